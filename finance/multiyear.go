package finance

import (
	"sort"

	"bitbucket.org/hoaworks/portal_backend/models"
	"github.com/shopspring/decimal"
)

// TotalRowName labels the synthetic all-categories row in a multi-year
// comparison.
const TotalRowName = "TOTAL"

type YearTrend string

const (
	YearTrendIncreasing YearTrend = "increasing"
	YearTrendDecreasing YearTrend = "decreasing"
	YearTrendStable     YearTrend = "stable"
)

// MultiYearRow aligns one category's yearly budget across a three-year
// window. ByYear is keyed by fiscal year; a category absent in a year
// contributes zero for that year.
type MultiYearRow struct {
	CategoryName string                  `json:"category_name"`
	ByYear       map[int]decimal.Decimal `json:"by_year"`
	YoyChange    decimal.Decimal         `json:"yoy_change"`
	YoyPercent   decimal.Decimal         `json:"yoy_percent"`
}

type MultiYearComparison struct {
	Years []int          `json:"years"`
	Rows  []MultiYearRow `json:"rows"`
	Total MultiYearRow   `json:"total"`
}

type TrendAnalysis struct {
	Increasing   []string  `json:"increasing"`
	Decreasing   []string  `json:"decreasing"`
	Stable       []string  `json:"stable"`
	OverallTrend YearTrend `json:"overall_trend"`
}

// CompareYears aligns budget categories across [currentYear-2, currentYear]
// joined on category_name. Rows are sorted descending by the most recent
// year's value; YoyPercent is zero when the prior year's value is zero.
func CompareYears(categories []models.BudgetCategory, currentYear int) MultiYearComparison {
	years := []int{currentYear - 2, currentYear - 1, currentYear}

	inWindow := map[int]bool{}
	for _, y := range years {
		inWindow[y] = true
	}

	byCategory := map[string]map[int]decimal.Decimal{}
	var names []string
	for _, cat := range categories {
		if !inWindow[cat.FiscalYear] {
			continue
		}
		perYear, ok := byCategory[cat.CategoryName]
		if !ok {
			perYear = map[int]decimal.Decimal{}
			byCategory[cat.CategoryName] = perYear
			names = append(names, cat.CategoryName)
		}
		perYear[cat.FiscalYear] = perYear[cat.FiscalYear].Add(ParseAmount(cat.YearlyBudget))
	}

	rows := make([]MultiYearRow, 0, len(names))
	totalByYear := map[int]decimal.Decimal{}
	for _, y := range years {
		totalByYear[y] = decimal.Zero
	}
	for _, name := range names {
		byYear := map[int]decimal.Decimal{}
		for _, y := range years {
			byYear[y] = byCategory[name][y]
			totalByYear[y] = totalByYear[y].Add(byYear[y])
		}
		rows = append(rows, buildRow(name, byYear, currentYear))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ByYear[currentYear].GreaterThan(rows[j].ByYear[currentYear])
	})

	return MultiYearComparison{
		Years: years,
		Rows:  rows,
		Total: buildRow(TotalRowName, totalByYear, currentYear),
	}
}

func buildRow(name string, byYear map[int]decimal.Decimal, currentYear int) MultiYearRow {
	current := byYear[currentYear]
	prior := byYear[currentYear-1]
	change := current.Sub(prior)
	return MultiYearRow{
		CategoryName: name,
		ByYear:       byYear,
		YoyChange:    change,
		YoyPercent:   percentOf(change, prior),
	}
}

var trendThreshold = decimal.NewFromInt(5)

// AnalyzeTrend partitions comparison rows by year-over-year percent:
// above 5 is increasing, below -5 decreasing, the band between is stable.
// The overall trend mirrors the TOTAL row under the same thresholds.
func AnalyzeTrend(comparison MultiYearComparison) TrendAnalysis {
	analysis := TrendAnalysis{
		Increasing: []string{},
		Decreasing: []string{},
		Stable:     []string{},
	}
	for _, row := range comparison.Rows {
		switch classifyTrend(row.YoyPercent) {
		case YearTrendIncreasing:
			analysis.Increasing = append(analysis.Increasing, row.CategoryName)
		case YearTrendDecreasing:
			analysis.Decreasing = append(analysis.Decreasing, row.CategoryName)
		default:
			analysis.Stable = append(analysis.Stable, row.CategoryName)
		}
	}
	analysis.OverallTrend = classifyTrend(comparison.Total.YoyPercent)
	return analysis
}

func classifyTrend(yoyPercent decimal.Decimal) YearTrend {
	switch {
	case yoyPercent.GreaterThan(trendThreshold):
		return YearTrendIncreasing
	case yoyPercent.LessThan(trendThreshold.Neg()):
		return YearTrendDecreasing
	default:
		return YearTrendStable
	}
}
