package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskLevel – immutable value object
// ---------------------------------------------------------------------------

// RiskLevel is the risk tier derived from a credit score.
type RiskLevel struct {
	value string
}

const (
	riskLow    = "low"
	riskMedium = "medium"
	riskHigh   = "high"
)

var (
	RiskLevelLow    = RiskLevel{value: riskLow}
	RiskLevelMedium = RiskLevel{value: riskMedium}
	RiskLevelHigh   = RiskLevel{value: riskHigh}
)

// Score thresholds for the risk tiers.
const (
	LowRiskMinScore    = 70
	MediumRiskMinScore = 50
)

var validRiskLevels = map[string]RiskLevel{
	riskLow:    RiskLevelLow,
	riskMedium: RiskLevelMedium,
	riskHigh:   RiskLevelHigh,
}

// NewRiskLevel creates a RiskLevel from a raw string.
func NewRiskLevel(s string) (RiskLevel, error) {
	v, ok := validRiskLevels[s]
	if !ok {
		return RiskLevel{}, fmt.Errorf("invalid risk level: %q", s)
	}
	return v, nil
}

// RiskLevelForScore maps a score to its tier: low at 70 and above, medium at
// 50 and above, high otherwise.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= LowRiskMinScore:
		return RiskLevelLow
	case score >= MediumRiskMinScore:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// String returns the string representation of the risk level.
func (r RiskLevel) String() string { return r.value }

// IsZero returns true if the risk level has not been initialised.
func (r RiskLevel) IsZero() bool { return r.value == "" }

// Equal returns true when both levels carry the same value.
func (r RiskLevel) Equal(other RiskLevel) bool { return r.value == other.value }

// MarshalText implements encoding.TextMarshaler.
func (r RiskLevel) MarshalText() ([]byte, error) { return []byte(r.value), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RiskLevel) UnmarshalText(b []byte) error {
	v, err := NewRiskLevel(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
