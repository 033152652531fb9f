package service_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bibbank/agricredit/internal/domain/service"
)

func TestAmortize_ZeroRateSplitsEvenly(t *testing.T) {
	calc := service.Amortize(100_000, 0, 12)

	assert.Equal(t, 8333.0, calc.EMI)
	assert.Equal(t, 100_000.0, calc.TotalAmount)
	assert.Equal(t, 0.0, calc.TotalInterest)
	assert.Equal(t, 12, calc.TenureMonths)
}

func TestAmortize_InterestBearing(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		emi       float64
		total     float64
		interest  float64
	}{
		{"12% over a year", 100_000, 12, 12, 8885, 106_619, 6619},
		{"7% over two years", 100_000, 7, 24, 4477, 107_454, 7454},
		{"9% over eighteen months", 70_000, 9, 18, 4172, 75_093, 5093},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := service.Amortize(tt.principal, tt.rate, tt.months)
			assert.Equal(t, tt.emi, calc.EMI)
			assert.Equal(t, tt.total, calc.TotalAmount)
			assert.Equal(t, tt.interest, calc.TotalInterest)
		})
	}
}

func TestAmortize_InterestRaisesPayment(t *testing.T) {
	zero := service.Amortize(100_000, 0, 12)
	twelve := service.Amortize(100_000, 12, 12)

	assert.Greater(t, twelve.EMI, zero.EMI)
}

func TestAmortize_DegenerateInputsStayFinite(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
	}{
		{"zero principal", 0, 12, 12},
		{"zero tenure", 100_000, 12, 0},
		{"negative tenure", 100_000, 12, -3},
		{"NaN principal", math.NaN(), 12, 12},
		{"infinite rate", 100_000, math.Inf(1), 12},
		{"negative rate", 100_000, -5, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := service.Amortize(tt.principal, tt.rate, tt.months)
			for _, v := range []float64{calc.EMI, calc.TotalAmount, calc.TotalInterest} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite output %v", v)
			}
		})
	}

	assert.Equal(t, 0.0, service.Amortize(100_000, 12, 0).EMI)
	assert.Equal(t, 8333.0, service.Amortize(100_000, -5, 12).EMI)
}
