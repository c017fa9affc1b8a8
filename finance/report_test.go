package finance

import (
	"testing"

	"bitbucket.org/hoaworks/portal_backend/models"
	"github.com/shopspring/decimal"
)

func testSnapshot() Snapshot {
	return Snapshot{
		Accounts: []models.Account{
			{ID: 1, Number: "1001", Name: "Operating", Type: models.AccountTypeOperating},
			{ID: 2, Number: "2001", Name: "Reserve", Type: models.AccountTypeReserve},
		},
		Transactions: []models.Transaction{
			{AccountId: 1, FiscalYear: 2026, StatementMonth: "01", CategoryId: 1,
				Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromInt(1200)},
			{AccountId: 1, FiscalYear: 2026, StatementMonth: "01",
				Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(4000)},
			{AccountId: 1, FiscalYear: 2026, StatementMonth: "01", CategoryId: 1,
				Description: "online transfer to reserve",
				Type:        models.TransactionTypeTransferOut, Amount: decimal.NewFromInt(500)},
		},
		Categories: []models.BudgetCategory{
			{ID: 1, CategoryName: "Maintenance", FiscalYear: 2026,
				MonthlyBudget: decimal.NewFromInt(1000), YearlyBudget: decimal.NewFromInt(12000)},
			{ID: 2, CategoryName: "Maintenance", FiscalYear: 2025,
				MonthlyBudget: decimal.NewFromInt(900), YearlyBudget: decimal.NewFromInt(10800)},
		},
		Statements: []models.MonthlyStatement{
			{AccountId: 1, StatementMonth: "01", FiscalYear: 2026,
				BeginningBalance: decimal.NewFromInt(10000), EndingBalance: decimal.NewFromInt(12300)},
			{AccountId: 2, StatementMonth: "01", FiscalYear: 2026,
				BeginningBalance: decimal.NewFromInt(60000), EndingBalance: decimal.NewFromInt(60500)},
		},
	}
}

func TestSnapshotMetrics(t *testing.T) {
	snap := testSnapshot()
	metrics := snap.Metrics()

	if !metrics.OperatingBalance.Equal(decimal.NewFromInt(12300)) {
		t.Errorf("operating = %s, want 12300", metrics.OperatingBalance)
	}
	if !metrics.ReserveBalance.Equal(decimal.NewFromInt(60500)) {
		t.Errorf("reserve = %s, want 60500", metrics.ReserveBalance)
	}
	if !metrics.SpecialBalance.IsZero() {
		t.Errorf("special = %s, want 0", metrics.SpecialBalance)
	}
	if !snap.HasReserveAccount() {
		t.Error("snapshot has a reserve account")
	}
}

func TestSnapshotCategoriesForYear(t *testing.T) {
	snap := testSnapshot()
	current := snap.CategoriesForYear(2026)
	if len(current) != 1 || current[0].FiscalYear != 2026 {
		t.Fatalf("CategoriesForYear(2026) = %+v, want the single 2026 row", current)
	}
}

func TestComputeBoardReport_PiecesAgree(t *testing.T) {
	snap := testSnapshot()
	filter := FilterSelection{FiscalYear: 2026, StartMonth: "01", EndMonth: "01"}

	report := ComputeBoardReport(snap, filter, 6)

	// Variance: 1200 actual vs 1000 budget for one month; the transfer-out is
	// excluded.
	if len(report.Variance.Rows) != 1 {
		t.Fatalf("got %d variance rows, want 1", len(report.Variance.Rows))
	}
	row := report.Variance.Rows[0]
	if !row.Actual.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("actual = %s, want 1200", row.Actual)
	}
	if row.Status != VarianceStatusOver {
		t.Errorf("status = %s, want over", row.Status)
	}
	// 200 over on a 1000 budget is past the 10% critical line.
	if report.Variance.Summary.Status != ReportStatusCritical {
		t.Errorf("summary status = %s, want critical", report.Variance.Summary.Status)
	}

	// Forecast defaults to the operating account and anchors on its latest
	// statement.
	if !report.CashFlow.AnchorBalance.Equal(decimal.NewFromInt(12300)) {
		t.Errorf("anchor = %s, want 12300", report.CashFlow.AnchorBalance)
	}
	if len(report.CashFlow.Projections) != 6 {
		t.Errorf("got %d projections, want 6", len(report.CashFlow.Projections))
	}

	// Reserve is comfortably above the statutory floors and no transactions
	// are flagged, so compliance comes back clean.
	if !report.Compliance.Compliant {
		t.Errorf("compliance = %+v, want compliant", report.Compliance)
	}
	if report.Compliance.FiduciaryRisk != FiduciaryRiskLow {
		t.Errorf("risk = %s, want LOW", report.Compliance.FiduciaryRisk)
	}

	if report.Health.Score < 0 || report.Health.Score > 100 {
		t.Errorf("score = %d out of range", report.Health.Score)
	}
}

func TestTransactionFilter_UnsetSelectorsAddNoPredicates(t *testing.T) {
	minimal := transactionFilter(FilterSelection{
		FiscalYear: 2026, StartMonth: MonthAll, EndMonth: MonthAll,
	})
	and, ok := minimal.(models.And)
	if !ok {
		t.Fatalf("filter is %T, want And", minimal)
	}
	if len(and.Preds) != 1 {
		t.Fatalf("got %d predicates, want just the fiscal year", len(and.Preds))
	}

	full := transactionFilter(FilterSelection{
		FiscalYear: 2026, AccountId: 1, CategoryId: 2, Vendor: "GreenThumb",
		StartMonth: "03", EndMonth: "05",
	})
	and, ok = full.(models.And)
	if !ok {
		t.Fatalf("filter is %T, want And", full)
	}
	if len(and.Preds) != 5 {
		t.Fatalf("got %d predicates, want 5", len(and.Preds))
	}
}
