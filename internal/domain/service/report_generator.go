package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"

	"github.com/bibbank/agricredit/internal/domain/model"
	"github.com/bibbank/agricredit/internal/domain/valueobject"
	"github.com/bibbank/agricredit/pkg/money"
)

// ReportData holds what a text export is rendered from.
type ReportData struct {
	GeneratedAt  time.Time
	AssessmentID string
	FarmerName   string
	CreditScore  model.CreditScore
}

// ReportGenerator is a domain service that renders plain-text credit
// reports and improvement plans.
type ReportGenerator struct{}

// NewReportGenerator creates a new ReportGenerator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate renders the report of the given kind. Only the improvement plan
// is localised; the credit report is always English.
func (g *ReportGenerator) Generate(kind valueobject.ReportKind, lang valueobject.Language, data ReportData) (string, error) {
	switch {
	case kind.Equal(valueobject.ReportKindCreditReport):
		return g.creditReport(data), nil
	case kind.Equal(valueobject.ReportKindImprovementPlan):
		return g.improvementPlan(data, lang), nil
	default:
		return "", fmt.Errorf("unsupported report kind: %q", kind.String())
	}
}

// ReportFilename names an export "<kind>_<farmer>_<timestamp>.txt".
func ReportFilename(kind valueobject.ReportKind, farmerName string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.txt", kind, slug(farmerName), at.UTC().Format("2006-01-02T15-04-05"))
}

const reportTimeLayout = "2006-01-02 15:04:05 MST"

func heading(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", utf8.RuneCountInString(title)))
	b.WriteString("\n")
}

func numbered(b *strings.Builder, lines []string) {
	for i, line := range lines {
		fmt.Fprintf(b, "%d. %s\n", i+1, line)
	}
}

func (g *ReportGenerator) creditReport(data ReportData) string {
	cs := data.CreditScore
	var b strings.Builder

	heading(&b, "AGRICREDIT SCORE REPORT")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Farmer Name: %s\n", data.FarmerName)
	fmt.Fprintf(&b, "Generated On: %s\n", data.GeneratedAt.UTC().Format(reportTimeLayout))
	fmt.Fprintf(&b, "Report ID: AGR-%s\n\n", data.AssessmentID)

	heading(&b, "CREDIT SCORE SUMMARY")
	fmt.Fprintf(&b, "Score: %d/100\n", cs.Score)
	fmt.Fprintf(&b, "Risk Level: %s\n\n", strings.ToUpper(cs.RiskLevel.String()))

	heading(&b, "KEY FACTORS")
	for i, f := range cs.Factors {
		fmt.Fprintf(&b, "%d. %s: %+d points\n", i+1, f.Name, f.Impact)
		fmt.Fprintf(&b, "     Value: %s\n", f.Value)
	}
	b.WriteString("\n")

	heading(&b, "EXPLANATION")
	numbered(&b, cs.Explanation)
	b.WriteString("\n")

	heading(&b, "RECOMMENDATIONS")
	numbered(&b, cs.Recommendations)
	b.WriteString("\n")

	le := cs.LoanEligibility
	heading(&b, "LOAN ELIGIBILITY")
	if le.Eligible {
		b.WriteString("Eligible: YES\n")
		fmt.Fprintf(&b, "Maximum Amount: %s\n", money.Rupees(le.MaxAmount).Format(language.English))
		fmt.Fprintf(&b, "Interest Rate: %g%% per annum\n", le.InterestRate)
		fmt.Fprintf(&b, "Recommended Period: %d months\n", le.RecommendedPeriod)
		fmt.Fprintf(&b, "Monthly EMI: %s\n\n", money.Rupees(le.EMI).Format(language.English))
	} else {
		b.WriteString("Eligible: NO\n\n")
	}

	heading(&b, "NEXT STEPS")
	numbered(&b, []string{
		"Visit your nearest bank with required documents",
		"Present this report along with your application",
		"Follow up on improvement suggestions if risk level is medium/high",
		"Reapply after implementing recommendations if needed",
	})
	b.WriteString("\n")

	heading(&b, "DISCLAIMER")
	b.WriteString("This score is for guidance purposes only. Final loan approval decisions rest with the lending institution.\n")

	return b.String()
}

type planHeadings struct {
	title            string
	yieldImprovement string
	riskManagement   string
	technology       string
}

var planHeadingsByLanguage = map[valueobject.Language]planHeadings{
	valueobject.LanguageEnglish: {
		title:            "FARMING IMPROVEMENT PLAN",
		yieldImprovement: "YIELD IMPROVEMENT STRATEGIES",
		riskManagement:   "RISK MANAGEMENT & RESILIENCE",
		technology:       "TECHNOLOGY ADOPTION",
	},
	valueobject.LanguageHindi: {
		title:            "कृषि सुधार योजना",
		yieldImprovement: "उत्पादन वृद्धि रणनीतियाँ",
		riskManagement:   "जोखिम प्रबंधन और लचीलापन",
		technology:       "प्रौद्योगिकी अपनाना",
	},
	valueobject.LanguageMarathi: {
		title:            "शेतकी सुधारणा योजना",
		yieldImprovement: "उत्पादन वाढीच्या रणनीती",
		riskManagement:   "जोखीम व्यवस्थापन आणि लवचिकता",
		technology:       "तंत्रज्ञान अवलंब",
	},
}

type planItem struct {
	title    string
	points   []string
	timeline string
}

func writePlanItems(b *strings.Builder, items []planItem) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item.title)
		for _, p := range item.points {
			fmt.Fprintf(b, "   - %s\n", p)
		}
		fmt.Fprintf(b, "   - Timeline: %s\n\n", item.timeline)
	}
}

func (g *ReportGenerator) improvementPlan(data ReportData, lang valueobject.Language) string {
	h, ok := planHeadingsByLanguage[lang]
	if !ok {
		h = planHeadingsByLanguage[valueobject.LanguageEnglish]
	}
	cs := data.CreditScore
	var b strings.Builder

	heading(&b, h.title)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Farmer Name: %s\n", data.FarmerName)
	fmt.Fprintf(&b, "Generated On: %s\n", data.GeneratedAt.UTC().Format(reportTimeLayout))
	fmt.Fprintf(&b, "Current Credit Score: %d/100\n", cs.Score)
	fmt.Fprintf(&b, "Risk Level: %s\n\n", strings.ToUpper(cs.RiskLevel.String()))

	heading(&b, h.yieldImprovement)
	writePlanItems(&b, []planItem{
		{"Use High-Yield Variety Seeds", []string{"Switch to certified hybrid seeds", "Expected impact: 20-30% yield increase"}, "Next season"},
		{"Soil Testing & Fertilization", []string{"Get soil tested every 2 years", "Use balanced NPK fertilizers"}, "Immediate"},
		{"Precision Farming Techniques", []string{"GPS-guided equipment", "Variable rate application"}, "1-2 years"},
	})

	heading(&b, h.riskManagement)
	writePlanItems(&b, []planItem{
		{"Weather-Resistant Varieties", []string{"Plant drought-tolerant crops", "Flood-resistant varieties"}, "Next season"},
		{"Crop Insurance", []string{"Enroll in PM Fasal Bima Yojana", "Weather risk protection"}, "Immediate"},
		{"Water Conservation", []string{"Install drip irrigation", "Sprinkler systems"}, "6 months"},
	})

	heading(&b, h.technology)
	writePlanItems(&b, []planItem{
		{"Mobile Apps for Farming", []string{"Kisan Suvidha app", "Weather and market updates"}, "Immediate"},
		{"IoT Sensors", []string{"Soil moisture monitoring", "Weather stations"}, "1 year"},
	})

	if len(cs.Recommendations) > 0 {
		heading(&b, "PRIORITY ACTIONS")
		numbered(&b, cs.Recommendations)
		b.WriteString("\n")
	}

	heading(&b, "GOVERNMENT SCHEMES TO APPLY")
	numbered(&b, []string{
		"PM-KISAN: " + money.Rupees(6000).Format(language.English) + " annual support",
		"Pradhan Mantri Fasal Bima Yojana: Crop insurance",
		"Kisan Credit Card: Credit facility at 7% interest",
		"Soil Health Card: Free soil testing",
	})

	return b.String()
}

// slug lowercases name and replaces every run of non-alphanumerics with one underscore.
func slug(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	if b.Len() == 0 {
		return "farmer"
	}
	return b.String()
}
