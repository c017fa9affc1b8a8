package finance

import (
	"fmt"

	"bitbucket.org/hoaworks/portal_backend/models"
	"bitbucket.org/hoaworks/portal_backend/utils"
	"github.com/shopspring/decimal"
)

type FindingSeverity string

const (
	FindingSeverityInfo     FindingSeverity = "info"
	FindingSeverityWarning  FindingSeverity = "warning"
	FindingSeverityCritical FindingSeverity = "critical"
)

type FiduciaryRisk string

const (
	FiduciaryRiskLow      FiduciaryRisk = "LOW"
	FiduciaryRiskModerate FiduciaryRisk = "MODERATE"
	FiduciaryRiskHigh     FiduciaryRisk = "HIGH"
)

// ComplianceFinding is one structured rule hit. StatuteRef is optional; rules
// without a statutory basis leave it empty.
type ComplianceFinding struct {
	Severity          FindingSeverity `json:"severity"`
	StatuteRef        string          `json:"statute_ref,omitempty"`
	Description       string          `json:"description"`
	RecommendedAction string          `json:"recommended_action"`
}

type ComplianceReport struct {
	Compliant      bool                `json:"compliant"`
	CriticalIssues []ComplianceFinding `json:"critical_issues"`
	Violations     []ComplianceFinding `json:"violations"`
	Warnings       []ComplianceFinding `json:"warnings"`
	FiduciaryRisk  FiduciaryRisk       `json:"fiduciary_risk"`
}

// ComplianceInput bundles the already-computed figures the rule table is
// evaluated against. The checker derives no numbers of its own.
type ComplianceInput struct {
	Metrics             AccountMetrics
	ViolationCount      int
	FundMixingCount     int
	MonthsUntilNegative *int
	HasReserveAccount   bool
}

type complianceRule struct {
	severity FindingSeverity
	// violation marks rules driven by flagged ledger transactions; their
	// findings land in the report's Violations list unless critical.
	violation         bool
	statuteRef        string
	triggered         func(in ComplianceInput) bool
	description       func(in ComplianceInput) string
	recommendedAction string
}

// complianceRules is the declarative statutory rule table, evaluated in
// order. Adding a rule means adding a row here, not new control flow.
var complianceRules = []complianceRule{
	{
		severity:   FindingSeverityCritical,
		statuteRef: "Civ. Code § 5550",
		triggered: func(in ComplianceInput) bool {
			return in.HasReserveAccount && in.Metrics.ReserveBalance.LessThan(reserveFloorCritical)
		},
		description: func(in ComplianceInput) string {
			return fmt.Sprintf("reserve fund balance %s is below the statutory minimum of %s",
				FormatCurrency(in.Metrics.ReserveBalance), FormatCurrency(reserveFloorCritical))
		},
		recommendedAction: "Adopt a reserve funding plan and schedule a special assessment vote at the next board meeting.",
	},
	{
		severity:   FindingSeverityWarning,
		statuteRef: "Civ. Code § 5550",
		triggered: func(in ComplianceInput) bool {
			return in.HasReserveAccount &&
				in.Metrics.ReserveBalance.GreaterThanOrEqual(reserveFloorCritical) &&
				in.Metrics.ReserveBalance.LessThan(reserveFloorWarning)
		},
		description: func(in ComplianceInput) string {
			return fmt.Sprintf("reserve fund balance %s is below the recommended funding level of %s",
				FormatCurrency(in.Metrics.ReserveBalance), FormatCurrency(reserveFloorWarning))
		},
		recommendedAction: "Review the most recent reserve study and increase monthly reserve contributions.",
	},
	{
		severity: FindingSeverityCritical,
		triggered: func(in ComplianceInput) bool {
			return !in.HasReserveAccount
		},
		description: func(in ComplianceInput) string {
			return "no designated reserve account exists for this association"
		},
		recommendedAction: "Open a dedicated reserve account and segregate reserve funds from operating funds.",
	},
	{
		severity:   FindingSeverityCritical,
		statuteRef: "Civ. Code § 5500",
		triggered: func(in ComplianceInput) bool {
			return in.FundMixingCount > 0
		},
		description: func(in ComplianceInput) string {
			return fmt.Sprintf("%d transaction(s) flagged for commingling reserve and operating funds", in.FundMixingCount)
		},
		recommendedAction: "Reverse the commingled transfers and document the correction in the board minutes.",
	},
	{
		severity:  FindingSeverityWarning,
		violation: true,
		triggered: func(in ComplianceInput) bool {
			return in.ViolationCount > in.FundMixingCount
		},
		description: func(in ComplianceInput) string {
			return fmt.Sprintf("%d transaction(s) flagged for policy violations other than fund mixing", in.ViolationCount-in.FundMixingCount)
		},
		recommendedAction: "Review each flagged transaction with the treasurer and attach supporting documentation.",
	},
	{
		severity: FindingSeverityWarning,
		triggered: func(in ComplianceInput) bool {
			return in.MonthsUntilNegative != nil && *in.MonthsUntilNegative <= 6
		},
		description: func(in ComplianceInput) string {
			return fmt.Sprintf("operating cash is projected to go negative within %d months",
				utils.DereferencePtr(in.MonthsUntilNegative))
		},
		recommendedAction: "Prepare a revised operating budget or dues adjustment before the projected shortfall.",
	},
	{
		severity: FindingSeverityInfo,
		triggered: func(in ComplianceInput) bool {
			return in.Metrics.SpecialBalance.GreaterThan(decimal.Zero)
		},
		description: func(in ComplianceInput) string {
			return fmt.Sprintf("special assessment account holds %s", FormatCurrency(in.Metrics.SpecialBalance))
		},
		recommendedAction: "Confirm special assessment funds are spent only on their approved purpose.",
	},
}

// CheckCompliance evaluates the statutory rule table against pre-computed
// figures. Any critical finding forces HIGH fiduciary risk; any violation
// without a critical finding yields MODERATE; otherwise LOW.
func CheckCompliance(in ComplianceInput) ComplianceReport {
	report := ComplianceReport{
		CriticalIssues: []ComplianceFinding{},
		Violations:     []ComplianceFinding{},
		Warnings:       []ComplianceFinding{},
	}

	for _, rule := range complianceRules {
		if !rule.triggered(in) {
			continue
		}
		finding := ComplianceFinding{
			Severity:          rule.severity,
			StatuteRef:        rule.statuteRef,
			Description:       rule.description(in),
			RecommendedAction: rule.recommendedAction,
		}
		switch {
		case rule.severity == FindingSeverityCritical:
			report.CriticalIssues = append(report.CriticalIssues, finding)
		case rule.violation:
			report.Violations = append(report.Violations, finding)
		default:
			report.Warnings = append(report.Warnings, finding)
		}
	}

	report.Compliant = len(report.CriticalIssues) == 0 && len(report.Violations) == 0
	switch {
	case len(report.CriticalIssues) > 0:
		report.FiduciaryRisk = FiduciaryRiskHigh
	case len(report.Violations) > 0:
		report.FiduciaryRisk = FiduciaryRiskModerate
	default:
		report.FiduciaryRisk = FiduciaryRiskLow
	}
	return report
}

// CountViolations tallies flagged transactions for the compliance input.
func CountViolations(transactions []models.Transaction) (total int, fundMixing int) {
	for _, t := range transactions {
		if !t.IsViolation {
			continue
		}
		total++
		if t.ViolationType == models.ViolationTypeFundMixing {
			fundMixing++
		}
	}
	return total, fundMixing
}
