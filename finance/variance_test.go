package finance

import (
	"testing"

	"bitbucket.org/hoaworks/portal_backend/models"
	"github.com/shopspring/decimal"
)

func withdrawal(categoryId int, amount int64) models.Transaction {
	return models.Transaction{
		AccountId:  1,
		CategoryId: categoryId,
		Type:       models.TransactionTypeWithdrawal,
		Amount:     decimal.NewFromInt(amount),
	}
}

func TestVarianceAnalysis_OnTargetRoundTrip(t *testing.T) {
	categories := []models.BudgetCategory{
		{ID: 1, CategoryName: "Landscaping", MonthlyBudget: decimal.NewFromInt(1000)},
	}
	transactions := []models.Transaction{
		withdrawal(1, 2000),
		withdrawal(1, 1500),
		withdrawal(1, 2500),
	}

	rows := VarianceAnalysis(categories, transactions, 6)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if !row.Actual.Equal(decimal.NewFromInt(6000)) {
		t.Errorf("actual = %s, want 6000", row.Actual)
	}
	if !row.Variance.IsZero() {
		t.Errorf("variance = %s, want 0", row.Variance)
	}
	if row.Status != VarianceStatusOnTarget {
		t.Errorf("status = %s, want on_target", row.Status)
	}
}

func TestVarianceAnalysis_ExcludesTransfersAndViolations(t *testing.T) {
	categories := []models.BudgetCategory{
		{ID: 1, CategoryName: "Maintenance", MonthlyBudget: decimal.NewFromInt(500)},
	}
	transfer := withdrawal(1, 900)
	transfer.Description = "online transfer to reserve"
	flagged := withdrawal(1, 900)
	flagged.IsViolation = true
	transactions := []models.Transaction{
		withdrawal(1, 300),
		transfer,
		flagged,
	}

	rows := VarianceAnalysis(categories, transactions, 1)
	if !rows[0].Actual.Equal(decimal.NewFromInt(300)) {
		t.Errorf("actual = %s, want 300 (transfer and violation excluded)", rows[0].Actual)
	}
}

func TestVarianceAnalysis_RevenueCategorySumsDeposits(t *testing.T) {
	categories := []models.BudgetCategory{
		{ID: 1, CategoryName: "Monthly Dues", MonthlyBudget: decimal.NewFromInt(10000)},
	}
	deposit := models.Transaction{
		CategoryId: 1,
		Type:       models.TransactionTypeDeposit,
		Amount:     decimal.NewFromInt(9500),
	}
	transactions := []models.Transaction{deposit, withdrawal(1, 400)}

	rows := VarianceAnalysis(categories, transactions, 1)
	if !rows[0].Actual.Equal(decimal.NewFromInt(9500)) {
		t.Errorf("actual = %s, want 9500 (deposits only for dues)", rows[0].Actual)
	}
}

// Transactions without an explicit category id fold into budget buckets by
// description, through the same mapper the categories resolve with.
func TestVarianceAnalysis_UncategorizedFoldedByDescription(t *testing.T) {
	categories := []models.BudgetCategory{
		{ID: 7, CategoryName: "Landscaping", MonthlyBudget: decimal.NewFromInt(1000)},
		{ID: 8, CategoryName: "Utilities", MonthlyBudget: decimal.NewFromInt(500)},
	}
	lawn := withdrawal(0, 250)
	lawn.Description = "Lawn care - monthly service"
	water := withdrawal(0, 90)
	water.Description = "City water bill"
	unmapped := withdrawal(0, 9999)
	unmapped.Description = "Holiday party deposit refund"
	transactions := []models.Transaction{
		withdrawal(7, 600),
		lawn,
		water,
		unmapped,
	}

	rows := VarianceAnalysis(categories, transactions, 1)
	byName := map[string]CategoryVariance{}
	for _, row := range rows {
		byName[row.Category] = row
	}

	if got := byName["Landscaping"].Actual; !got.Equal(decimal.NewFromInt(850)) {
		t.Errorf("Landscaping actual = %s, want 850 (600 explicit + 250 by description)", got)
	}
	if got := byName["Utilities"].Actual; !got.Equal(decimal.NewFromInt(90)) {
		t.Errorf("Utilities actual = %s, want 90", got)
	}
}

func TestVarianceAnalysis_SortedByAbsoluteVariance(t *testing.T) {
	categories := []models.BudgetCategory{
		{ID: 1, CategoryName: "Landscaping", MonthlyBudget: decimal.NewFromInt(1000)},
		{ID: 2, CategoryName: "Maintenance", MonthlyBudget: decimal.NewFromInt(1000)},
		{ID: 3, CategoryName: "Utilities", MonthlyBudget: decimal.NewFromInt(1000)},
	}
	transactions := []models.Transaction{
		withdrawal(1, 1100), // +100
		withdrawal(2, 400),  // -600
		withdrawal(3, 1250), // +250
	}

	rows := VarianceAnalysis(categories, transactions, 1)
	want := []string{"Maintenance", "Utilities", "Landscaping"}
	for i, name := range want {
		if rows[i].Category != name {
			t.Fatalf("row %d = %s, want %s", i, rows[i].Category, name)
		}
	}
}

func TestVarianceAnalysis_PercentVariance(t *testing.T) {
	categories := []models.BudgetCategory{
		{ID: 1, CategoryName: "Utilities", MonthlyBudget: decimal.NewFromInt(1000)},
		{ID: 2, CategoryName: "Zero Budget", MonthlyBudget: decimal.Zero},
	}
	transactions := []models.Transaction{
		withdrawal(1, 1125),
		withdrawal(2, 50),
	}

	rows := VarianceAnalysis(categories, transactions, 1)
	for _, row := range rows {
		switch row.Category {
		case "Utilities":
			if row.PercentVariance.String() != "12.5" {
				t.Errorf("percent variance = %s, want 12.5", row.PercentVariance)
			}
		case "Zero Budget":
			if !row.PercentVariance.IsZero() {
				t.Errorf("zero-budget percent variance = %s, want 0", row.PercentVariance)
			}
		}
	}
}

func TestSummarizeVariance_StatusBands(t *testing.T) {
	mk := func(budget, actual int64) []CategoryVariance {
		b := decimal.NewFromInt(budget)
		a := decimal.NewFromInt(actual)
		v := a.Sub(b)
		status := VarianceStatusOnTarget
		switch {
		case v.IsPositive():
			status = VarianceStatusOver
		case v.IsNegative():
			status = VarianceStatusUnder
		}
		return []CategoryVariance{{Category: "X", Budget: b, Actual: a, Variance: v, Status: status}}
	}

	if got := SummarizeVariance(mk(1000, 900)).Status; got != ReportStatusGood {
		t.Errorf("under budget: status = %s, want good", got)
	}
	if got := SummarizeVariance(mk(1000, 1050)).Status; got != ReportStatusWarning {
		t.Errorf("5%% over: status = %s, want warning", got)
	}
	if got := SummarizeVariance(mk(1000, 1200)).Status; got != ReportStatusCritical {
		t.Errorf("20%% over: status = %s, want critical", got)
	}

	summary := SummarizeVariance(mk(1000, 1200))
	if summary.OverCount != 1 || summary.UnderCount != 0 {
		t.Errorf("counts = (%d over, %d under), want (1, 0)", summary.OverCount, summary.UnderCount)
	}
	if !summary.TotalVariance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("total variance = %s, want 200", summary.TotalVariance)
	}
}
