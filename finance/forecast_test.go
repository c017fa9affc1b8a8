package finance

import (
	"bytes"
	"encoding/json"
	"testing"

	"bitbucket.org/hoaworks/portal_backend/models"
	"github.com/shopspring/decimal"
)

func TestForecastCashFlow_ZeroHistory(t *testing.T) {
	statements := []models.MonthlyStatement{
		{AccountId: 1, StatementMonth: "06", FiscalYear: 2026, EndingBalance: decimal.NewFromInt(5000)},
	}

	summary := ForecastCashFlow(nil, statements, 1, 3)

	if !summary.AvgMonthlyIncome.IsZero() || !summary.AvgMonthlyExpenses.IsZero() {
		t.Fatalf("averages = (%s, %s), want (0, 0)", summary.AvgMonthlyIncome, summary.AvgMonthlyExpenses)
	}
	if summary.MonthsUntilNegative != nil {
		t.Errorf("months until negative = %d, want nil", *summary.MonthsUntilNegative)
	}
	if summary.Trend != CashFlowTrendStable {
		t.Errorf("trend = %s, want stable", summary.Trend)
	}
	if len(summary.Projections) != 3 {
		t.Fatalf("got %d projections, want 3", len(summary.Projections))
	}
	five := decimal.NewFromInt(5000)
	for _, p := range summary.Projections {
		if !p.BeginningBalance.Equal(five) || !p.EndingBalance.Equal(five) || !p.NetCashFlow.IsZero() {
			t.Errorf("month %s: balances (%s, %s) net %s, want flat 5000",
				p.Month, p.BeginningBalance, p.EndingBalance, p.NetCashFlow)
		}
		if !p.IsProjected {
			t.Error("projection must be marked projected")
		}
	}
}

func TestForecastCashFlow_NegativeRunway(t *testing.T) {
	transactions := []models.Transaction{
		{AccountId: 1, FiscalYear: 2026, StatementMonth: "06", Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(1000)},
		{AccountId: 1, FiscalYear: 2026, StatementMonth: "06", Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromInt(1800)},
	}
	statements := []models.MonthlyStatement{
		{AccountId: 1, StatementMonth: "06", FiscalYear: 2026, EndingBalance: decimal.NewFromInt(2000)},
	}

	summary := ForecastCashFlow(transactions, statements, 1, 3)

	if !summary.AvgNetCashFlow.Equal(decimal.NewFromInt(-800)) {
		t.Fatalf("avg net = %s, want -800", summary.AvgNetCashFlow)
	}
	if summary.Trend != CashFlowTrendNegative {
		t.Errorf("trend = %s, want negative", summary.Trend)
	}

	wantBalances := []int64{1200, 400, -400}
	wantMonths := []string{"07", "08", "09"}
	for i, p := range summary.Projections {
		if !p.EndingBalance.Equal(decimal.NewFromInt(wantBalances[i])) {
			t.Errorf("month %d ending balance = %s, want %d", i+1, p.EndingBalance, wantBalances[i])
		}
		if p.Month != wantMonths[i] || p.Year != 2026 {
			t.Errorf("month %d = %d-%s, want 2026-%s", i+1, p.Year, p.Month, wantMonths[i])
		}
	}

	if summary.MonthsUntilNegative == nil || *summary.MonthsUntilNegative != 3 {
		t.Fatalf("months until negative = %v, want 3", summary.MonthsUntilNegative)
	}
}

func TestForecastCashFlow_YearRollover(t *testing.T) {
	statements := []models.MonthlyStatement{
		{AccountId: 1, StatementMonth: "11", FiscalYear: 2026, EndingBalance: decimal.NewFromInt(1000)},
	}

	summary := ForecastCashFlow(nil, statements, 1, 3)

	want := []struct {
		year  int
		month string
	}{
		{2026, "12"}, {2027, "01"}, {2027, "02"},
	}
	for i, w := range want {
		p := summary.Projections[i]
		if p.Year != w.year || p.Month != w.month {
			t.Errorf("projection %d = %d-%s, want %d-%s", i, p.Year, p.Month, w.year, w.month)
		}
	}
}

// A month with no transactions must be absent from the averages, not pulled
// in as a zero entry.
func TestForecastCashFlow_SparseMonthsSkipAverages(t *testing.T) {
	transactions := []models.Transaction{
		{AccountId: 1, FiscalYear: 2026, StatementMonth: "01", Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(600)},
		{AccountId: 1, FiscalYear: 2026, StatementMonth: "05", Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(400)},
	}
	statements := []models.MonthlyStatement{
		{AccountId: 1, StatementMonth: "05", FiscalYear: 2026, EndingBalance: decimal.NewFromInt(100)},
	}

	summary := ForecastCashFlow(transactions, statements, 1, 1)

	// Two months with data: (600 + 400) / 2, not / 5.
	if !summary.AvgMonthlyIncome.Equal(decimal.NewFromInt(500)) {
		t.Errorf("avg income = %s, want 500", summary.AvgMonthlyIncome)
	}
}

func TestForecastCashFlow_AnchorsToLatestStatement(t *testing.T) {
	statements := []models.MonthlyStatement{
		{AccountId: 1, StatementMonth: "09", FiscalYear: 2025, EndingBalance: decimal.NewFromInt(100)},
		{AccountId: 1, StatementMonth: "03", FiscalYear: 2026, EndingBalance: decimal.NewFromInt(700)},
		{AccountId: 1, StatementMonth: "02", FiscalYear: 2026, EndingBalance: decimal.NewFromInt(300)},
		{AccountId: 2, StatementMonth: "12", FiscalYear: 2026, EndingBalance: decimal.NewFromInt(9999)},
	}

	summary := ForecastCashFlow(nil, statements, 1, 1)

	if !summary.AnchorBalance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("anchor = %s, want 700 (latest statement for account 1)", summary.AnchorBalance)
	}
}

func TestForecastCashFlow_Idempotent(t *testing.T) {
	transactions := []models.Transaction{
		{AccountId: 1, FiscalYear: 2026, StatementMonth: "04", Type: models.TransactionTypeDeposit, Amount: decimal.NewFromFloat(1234.56)},
		{AccountId: 1, FiscalYear: 2026, StatementMonth: "04", Type: models.TransactionTypeFee, Amount: decimal.NewFromFloat(78.9)},
		{AccountId: 1, FiscalYear: 2026, StatementMonth: "05", Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromInt(2000)},
	}
	statements := []models.MonthlyStatement{
		{AccountId: 1, StatementMonth: "05", FiscalYear: 2026, EndingBalance: decimal.NewFromFloat(10500.25)},
	}

	first, err := json.Marshal(ForecastCashFlow(transactions, statements, 1, 6))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(ForecastCashFlow(transactions, statements, 1, 6))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("forecast output differs between identical calls")
	}
}
