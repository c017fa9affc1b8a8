package finance

import (
	"context"

	"bitbucket.org/hoaworks/portal_backend/models"
)

// VarianceReport is the actual-vs-budget view for one filter scope.
type VarianceReport struct {
	Filter  FilterSelection    `json:"filter"`
	Rows    []CategoryVariance `json:"rows"`
	Summary VarianceSummary    `json:"summary"`
}

// BoardReport is the full board-packet payload: every analysis computed from
// a single snapshot so the numbers agree with each other.
type BoardReport struct {
	Filter     FilterSelection     `json:"filter"`
	Variance   VarianceReport      `json:"variance"`
	CashFlow   CashFlowSummary     `json:"cash_flow"`
	MultiYear  MultiYearComparison `json:"multi_year"`
	Trend      TrendAnalysis       `json:"trend"`
	Health     HealthScore         `json:"health"`
	Compliance ComplianceReport    `json:"compliance"`
	Metrics    AccountMetrics      `json:"metrics"`
}

// DefaultForecastMonths is how far ahead the board packet projects.
const DefaultForecastMonths = 6

// BuildVarianceReport computes the variance view over an already-loaded
// snapshot.
func BuildVarianceReport(snap Snapshot, filter FilterSelection) VarianceReport {
	rows := VarianceAnalysis(snap.CategoriesForYear(filter.FiscalYear), snap.Transactions, filter.MonthCount())
	return VarianceReport{
		Filter:  filter,
		Rows:    rows,
		Summary: SummarizeVariance(rows),
	}
}

// BuildBoardReport loads one snapshot and runs the whole pipeline over it.
// Each derived view exists only within this call; nothing is persisted.
func BuildBoardReport(ctx context.Context, filter FilterSelection, forecastMonths int) (BoardReport, error) {
	snap, err := LoadSnapshot(ctx, filter)
	if err != nil {
		return BoardReport{}, err
	}
	return ComputeBoardReport(snap, filter, forecastMonths), nil
}

// ComputeBoardReport is the pure half of BuildBoardReport, split out so the
// pipeline can be exercised without a record store.
func ComputeBoardReport(snap Snapshot, filter FilterSelection, forecastMonths int) BoardReport {
	if forecastMonths <= 0 {
		forecastMonths = DefaultForecastMonths
	}

	variance := BuildVarianceReport(snap, filter)

	forecastAccount := filter.AccountId
	if forecastAccount == 0 {
		forecastAccount = primaryOperatingAccount(snap)
	}
	cashflow := ForecastCashFlow(snap.Transactions, snap.Statements, forecastAccount, forecastMonths)

	comparison := CompareYears(snap.Categories, filter.FiscalYear)
	trend := AnalyzeTrend(comparison)
	metrics := snap.Metrics()

	health := ScoreHealth(variance.Summary, cashflow, metrics, trend, comparison.Total.YoyPercent)

	violations, fundMixing := CountViolations(snap.Transactions)
	compliance := CheckCompliance(ComplianceInput{
		Metrics:             metrics,
		ViolationCount:      violations,
		FundMixingCount:     fundMixing,
		MonthsUntilNegative: cashflow.MonthsUntilNegative,
		HasReserveAccount:   snap.HasReserveAccount(),
	})

	return BoardReport{
		Filter:     filter,
		Variance:   variance,
		CashFlow:   cashflow,
		MultiYear:  comparison,
		Trend:      trend,
		Health:     health,
		Compliance: compliance,
		Metrics:    metrics,
	}
}

func primaryOperatingAccount(snap Snapshot) int {
	for _, account := range snap.Accounts {
		if account.Type == models.AccountTypeOperating {
			return account.ID
		}
	}
	if len(snap.Accounts) > 0 {
		return snap.Accounts[0].ID
	}
	return 0
}
