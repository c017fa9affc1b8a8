package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type HealthStatus string

const (
	HealthStatusHealthy  HealthStatus = "healthy"
	HealthStatusCaution  HealthStatus = "caution"
	HealthStatusCritical HealthStatus = "critical"
)

// AccountMetrics carries the current balances the scorer and compliance
// checker need, keyed by account role rather than account id.
type AccountMetrics struct {
	OperatingBalance decimal.Decimal `json:"operating_balance"`
	ReserveBalance   decimal.Decimal `json:"reserve_balance"`
	SpecialBalance   decimal.Decimal `json:"special_balance"`
}

type HealthScore struct {
	Score  int          `json:"score"`
	Grade  string       `json:"grade"`
	Status HealthStatus `json:"status"`
	Issues []string     `json:"issues"`
}

var (
	reserveFloorCritical = decimal.NewFromInt(10000)
	reserveFloorWarning  = decimal.NewFromInt(50000)
	yoyGrowthCeiling     = decimal.NewFromInt(15)
)

// ScoreHealth composes a 0..100 financial health score. Each metric deducts
// at most one band (its highest triggered severity), and the four metrics
// deduct independently of each other:
//
//	variance:  -30 above 20%, -15 above 10%, -5 above 0
//	cash flow: -30 when runway is 3 months or less, else -15 on negative net
//	reserves:  -20 below $10,000, -10 below $50,000
//	growth:    -10 when total YoY change exceeds 15%
func ScoreHealth(variance VarianceSummary, cashflow CashFlowSummary, metrics AccountMetrics, trend TrendAnalysis, yoyPercent decimal.Decimal) HealthScore {
	score := 100
	issues := []string{}

	switch {
	case variance.PercentVariance.GreaterThan(decimal.NewFromInt(20)):
		score -= 30
		issues = append(issues, fmt.Sprintf("budget variance of %s%% is severely over plan", variance.PercentVariance))
	case variance.PercentVariance.GreaterThan(decimal.NewFromInt(10)):
		score -= 15
		issues = append(issues, fmt.Sprintf("budget variance of %s%% is over plan", variance.PercentVariance))
	case variance.PercentVariance.IsPositive():
		score -= 5
		issues = append(issues, fmt.Sprintf("budget variance of %s%% is slightly over plan", variance.PercentVariance))
	}

	switch {
	case cashflow.MonthsUntilNegative != nil && *cashflow.MonthsUntilNegative <= 3:
		score -= 30
		issues = append(issues, fmt.Sprintf("projected negative balance within %d months", *cashflow.MonthsUntilNegative))
	case cashflow.AvgNetCashFlow.IsNegative():
		score -= 15
		issues = append(issues, fmt.Sprintf("average monthly net cash flow is %s", FormatCurrency(cashflow.AvgNetCashFlow)))
	}

	switch {
	case metrics.ReserveBalance.LessThan(reserveFloorCritical):
		score -= 20
		issues = append(issues, fmt.Sprintf("reserve balance %s is critically low", FormatCurrency(metrics.ReserveBalance)))
	case metrics.ReserveBalance.LessThan(reserveFloorWarning):
		score -= 10
		issues = append(issues, fmt.Sprintf("reserve balance %s is below the recommended level", FormatCurrency(metrics.ReserveBalance)))
	}

	if yoyPercent.GreaterThan(yoyGrowthCeiling) {
		score -= 10
		issue := fmt.Sprintf("total budget grew %s%% year over year", yoyPercent)
		if trend.OverallTrend == YearTrendIncreasing {
			issue += " and the overall trend is still increasing"
		}
		issues = append(issues, issue)
	}

	if score < 0 {
		score = 0
	}

	return HealthScore{
		Score:  score,
		Grade:  gradeFor(score),
		Status: statusFor(score),
		Issues: issues,
	}
}

func gradeFor(score int) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

func statusFor(score int) HealthStatus {
	switch {
	case score >= 80:
		return HealthStatusHealthy
	case score >= 60:
		return HealthStatusCaution
	default:
		return HealthStatusCritical
	}
}
