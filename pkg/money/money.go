package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code with its display symbol.
type Currency struct {
	code   string
	symbol string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
// An empty symbol falls back to the code.
func NewCurrency(code, symbol string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	if symbol == "" {
		symbol = code
	}
	return Currency{code: code, symbol: symbol}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code, symbol string) Currency {
	c, err := NewCurrency(code, symbol)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// Symbol returns the display symbol.
func (c Currency) Symbol() string {
	return c.symbol
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// INR is the Indian rupee. All farmer-facing amounts are in rupees.
var INR = MustCurrency("INR", "₹")

// Money represents an immutable monetary amount with currency.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// Rupees creates an INR amount from a float.
func Rupees(amount float64) Money {
	return Money{amount: decimal.NewFromFloat(amount), currency: INR}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency.
func (m Money) Currency() Currency {
	return m.currency
}

// Float64 returns the amount as a float64.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// Format renders the amount rounded to whole units with the currency symbol and
// the digit grouping of the given language, e.g. "₹1,50,000" for en-IN.
func (m Money) Format(tag language.Tag) string {
	p := message.NewPrinter(tag)
	return m.currency.symbol + p.Sprint(number.Decimal(m.Float64(), number.MaxFractionDigits(0)))
}

// String formats the Money value as "<amount> <currency>" with two decimals, for example "1500.00 INR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency.Code())
}
