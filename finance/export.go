package finance

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	varianceSheet = "Variance"
	forecastSheet = "Cash Flow"
	summarySheet  = "Summary"
)

// WriteBoardPacket renders a board report as a three-sheet workbook and
// writes it to w. Amounts are written as formatted currency strings so the
// workbook matches the on-screen report exactly.
func WriteBoardPacket(report BoardReport, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(varianceSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(forecastSheet); err != nil {
		return err
	}

	writeSummarySheet(f, report)
	writeVarianceSheet(f, report.Variance)
	writeForecastSheet(f, report.CashFlow)

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, report BoardReport) {
	rows := [][]any{
		{"Fiscal Year", report.Filter.FiscalYear},
		{"Health Score", report.Health.Score},
		{"Grade", report.Health.Grade},
		{"Status", string(report.Health.Status)},
		{"Fiduciary Risk", string(report.Compliance.FiduciaryRisk)},
		{"Operating Balance", FormatCurrency(report.Metrics.OperatingBalance)},
		{"Reserve Balance", FormatCurrency(report.Metrics.ReserveBalance)},
		{"Special Balance", FormatCurrency(report.Metrics.SpecialBalance)},
		{"Total Budget", FormatCurrency(report.Variance.Summary.TotalBudget)},
		{"Total Actual", FormatCurrency(report.Variance.Summary.TotalActual)},
		{"Total Variance", FormatCurrency(report.Variance.Summary.TotalVariance)},
	}
	for i, row := range rows {
		f.SetCellValue(summarySheet, "A"+fmt.Sprint(i+1), row[0])
		f.SetCellValue(summarySheet, "B"+fmt.Sprint(i+1), row[1])
	}

	offset := len(rows) + 2
	f.SetCellValue(summarySheet, "A"+fmt.Sprint(offset), "Issues")
	for i, issue := range report.Health.Issues {
		f.SetCellValue(summarySheet, "A"+fmt.Sprint(offset+i+1), issue)
	}
}

func writeVarianceSheet(f *excelize.File, report VarianceReport) {
	f.SetCellValue(varianceSheet, "A1", "Category")
	f.SetCellValue(varianceSheet, "B1", "Actual")
	f.SetCellValue(varianceSheet, "C1", "Budget")
	f.SetCellValue(varianceSheet, "D1", "Variance")
	f.SetCellValue(varianceSheet, "E1", "Variance %")
	f.SetCellValue(varianceSheet, "F1", "Status")

	for i, row := range report.Rows {
		f.SetCellValue(varianceSheet, "A"+fmt.Sprint(i+2), row.Category)
		f.SetCellValue(varianceSheet, "B"+fmt.Sprint(i+2), FormatCurrency(row.Actual))
		f.SetCellValue(varianceSheet, "C"+fmt.Sprint(i+2), FormatCurrency(row.Budget))
		f.SetCellValue(varianceSheet, "D"+fmt.Sprint(i+2), FormatCurrency(row.Variance))
		f.SetCellValue(varianceSheet, "E"+fmt.Sprint(i+2), row.PercentVariance.String())
		f.SetCellValue(varianceSheet, "F"+fmt.Sprint(i+2), string(row.Status))
	}
}

func writeForecastSheet(f *excelize.File, summary CashFlowSummary) {
	f.SetCellValue(forecastSheet, "A1", "Year")
	f.SetCellValue(forecastSheet, "B1", "Month")
	f.SetCellValue(forecastSheet, "C1", "Beginning Balance")
	f.SetCellValue(forecastSheet, "D1", "Projected Income")
	f.SetCellValue(forecastSheet, "E1", "Projected Expenses")
	f.SetCellValue(forecastSheet, "F1", "Net Cash Flow")
	f.SetCellValue(forecastSheet, "G1", "Ending Balance")

	for i, p := range summary.Projections {
		f.SetCellValue(forecastSheet, "A"+fmt.Sprint(i+2), p.Year)
		f.SetCellValue(forecastSheet, "B"+fmt.Sprint(i+2), p.Month)
		f.SetCellValue(forecastSheet, "C"+fmt.Sprint(i+2), FormatCurrency(p.BeginningBalance))
		f.SetCellValue(forecastSheet, "D"+fmt.Sprint(i+2), FormatCurrency(p.ProjectedIncome))
		f.SetCellValue(forecastSheet, "E"+fmt.Sprint(i+2), FormatCurrency(p.ProjectedExpenses))
		f.SetCellValue(forecastSheet, "F"+fmt.Sprint(i+2), FormatCurrency(p.NetCashFlow))
		f.SetCellValue(forecastSheet, "G"+fmt.Sprint(i+2), FormatCurrency(p.EndingBalance))
	}
}
