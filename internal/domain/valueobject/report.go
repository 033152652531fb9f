package valueobject

import "fmt"

// ReportKind selects which text export is produced for an assessment.
type ReportKind struct {
	value string
}

const (
	reportCredit      = "credit_report"
	reportImprovement = "improvement_plan"
)

var (
	ReportKindCreditReport    = ReportKind{value: reportCredit}
	ReportKindImprovementPlan = ReportKind{value: reportImprovement}
)

// NewReportKind creates a ReportKind from a raw string. An empty string
// selects the credit report.
func NewReportKind(s string) (ReportKind, error) {
	switch s {
	case "", reportCredit:
		return ReportKindCreditReport, nil
	case reportImprovement:
		return ReportKindImprovementPlan, nil
	}
	return ReportKind{}, fmt.Errorf("invalid report kind: %q", s)
}

func (k ReportKind) String() string { return k.value }

func (k ReportKind) Equal(other ReportKind) bool { return k.value == other.value }

// Language is a report language code.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageMarathi Language = "mr"
)

// NewLanguage parses a language code. An empty string selects English.
func NewLanguage(s string) (Language, error) {
	switch l := Language(s); l {
	case "":
		return LanguageEnglish, nil
	case LanguageEnglish, LanguageHindi, LanguageMarathi:
		return l, nil
	}
	return "", fmt.Errorf("unsupported language: %q", s)
}
