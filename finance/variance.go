package finance

import (
	"sort"
	"strings"

	"bitbucket.org/hoaworks/portal_backend/models"
	"github.com/shopspring/decimal"
)

type VarianceStatus string

const (
	VarianceStatusOver     VarianceStatus = "over"
	VarianceStatusUnder    VarianceStatus = "under"
	VarianceStatusOnTarget VarianceStatus = "on_target"
)

type ReportStatus string

const (
	ReportStatusGood     ReportStatus = "good"
	ReportStatusWarning  ReportStatus = "warning"
	ReportStatusCritical ReportStatus = "critical"
)

// CategoryVariance is one actual-vs-budget row. Variance is signed:
// positive means spending (or shortfall against revenue) above budget.
type CategoryVariance struct {
	Category        string          `json:"category"`
	Actual          decimal.Decimal `json:"actual"`
	Budget          decimal.Decimal `json:"budget"`
	Variance        decimal.Decimal `json:"variance"`
	PercentVariance decimal.Decimal `json:"percent_variance"`
	Status          VarianceStatus  `json:"status"`
}

type VarianceSummary struct {
	TotalBudget     decimal.Decimal `json:"total_budget"`
	TotalActual     decimal.Decimal `json:"total_actual"`
	TotalVariance   decimal.Decimal `json:"total_variance"`
	PercentVariance decimal.Decimal `json:"percent_variance"`
	OverCount       int             `json:"over_count"`
	UnderCount      int             `json:"under_count"`
	OverAmount      decimal.Decimal `json:"over_amount"`
	UnderAmount     decimal.Decimal `json:"under_amount"`
	Status          ReportStatus    `json:"status"`
}

var percentScale = decimal.NewFromInt(1000)

// percentOf computes value/base as a percentage rounded to one decimal place,
// defined as zero when base is zero (never NaN, never an error).
func percentOf(value, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return value.Div(base).Mul(percentScale).Round(0).Div(decimal.NewFromInt(10))
}

// revenueOriented reports whether a budget category tracks money coming in
// (dues, assessments, interest) rather than spending. Those categories sum
// deposits instead of withdrawals.
func revenueOriented(categoryName string) bool {
	lowered := strings.ToLower(categoryName)
	for _, marker := range []string{"income", "dues", "assessment", "revenue", "interest"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// bucketIndex resolves each budget category to its bucket so transactions
// without an explicit category id can be folded in by free text. The first
// category row claiming a bucket wins; "Other" never indexes.
func bucketIndex(categories []models.BudgetCategory) map[string]int {
	index := map[string]int{}
	for _, cat := range categories {
		bucket := MapToBudgetCategory(cat.CategoryName)
		if bucket == BucketOther {
			continue
		}
		if _, claimed := index[bucket]; !claimed {
			index[bucket] = cat.ID
		}
	}
	return index
}

// resolveCategoryId keeps an explicit category id as-is; an uncategorized
// transaction is mapped through its description to a budget bucket, and to
// the category row owning that bucket. Unmappable rows resolve to zero and
// fall outside every category's actuals.
func resolveCategoryId(t models.Transaction, buckets map[string]int) int {
	if t.CategoryId != 0 {
		return t.CategoryId
	}
	if bucket := MapToBudgetCategory(t.Description); bucket != BucketOther {
		return buckets[bucket]
	}
	return 0
}

// VarianceAnalysis compares each budget category's actuals against its
// pro-rated budget for the selected window. Transfers and flagged violations
// never count toward actuals. Rows come back sorted by |variance| descending
// so the largest deviations surface first, regardless of sign.
func VarianceAnalysis(categories []models.BudgetCategory, transactions []models.Transaction, monthCount int) []CategoryVariance {
	months := decimal.NewFromInt(int64(monthCount))
	buckets := bucketIndex(categories)

	rows := make([]CategoryVariance, 0, len(categories))
	for _, cat := range categories {
		wantType := models.TransactionTypeWithdrawal
		if revenueOriented(cat.CategoryName) {
			wantType = models.TransactionTypeDeposit
		}

		actual := decimal.Zero
		for _, t := range transactions {
			if resolveCategoryId(t, buckets) != cat.ID || t.Type != wantType {
				continue
			}
			if !countsTowardActuals(t) {
				continue
			}
			actual = actual.Add(t.Amount)
		}

		budget := cat.MonthlyBudget.Mul(months)
		variance := actual.Sub(budget)

		status := VarianceStatusOnTarget
		switch {
		case variance.IsPositive():
			status = VarianceStatusOver
		case variance.IsNegative():
			status = VarianceStatusUnder
		}

		rows = append(rows, CategoryVariance{
			Category:        cat.CategoryName,
			Actual:          actual,
			Budget:          budget,
			Variance:        variance,
			PercentVariance: percentOf(variance, budget),
			Status:          status,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Variance.Abs().GreaterThan(rows[j].Variance.Abs())
	})
	return rows
}

// SummarizeVariance rolls category rows up into a portfolio view. Critical
// means total variance exceeds 10% of total budget; any positive total
// variance below that is a warning.
func SummarizeVariance(rows []CategoryVariance) VarianceSummary {
	summary := VarianceSummary{
		TotalBudget:   decimal.Zero,
		TotalActual:   decimal.Zero,
		TotalVariance: decimal.Zero,
		OverAmount:    decimal.Zero,
		UnderAmount:   decimal.Zero,
	}

	for _, row := range rows {
		summary.TotalBudget = summary.TotalBudget.Add(row.Budget)
		summary.TotalActual = summary.TotalActual.Add(row.Actual)
		summary.TotalVariance = summary.TotalVariance.Add(row.Variance)
		switch row.Status {
		case VarianceStatusOver:
			summary.OverCount++
			summary.OverAmount = summary.OverAmount.Add(row.Variance)
		case VarianceStatusUnder:
			summary.UnderCount++
			summary.UnderAmount = summary.UnderAmount.Add(row.Variance.Abs())
		}
	}

	summary.PercentVariance = percentOf(summary.TotalVariance, summary.TotalBudget)

	tenPercent := summary.TotalBudget.Mul(decimal.NewFromFloat(0.1))
	switch {
	case summary.TotalVariance.GreaterThan(tenPercent) && summary.TotalVariance.IsPositive():
		summary.Status = ReportStatusCritical
	case summary.TotalVariance.IsPositive():
		summary.Status = ReportStatusWarning
	default:
		summary.Status = ReportStatusGood
	}
	return summary
}
