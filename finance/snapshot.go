package finance

import (
	"context"

	"bitbucket.org/hoaworks/portal_backend/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the immutable input bundle one analysis call computes over.
// Every engine function below receives slices from exactly one snapshot;
// mixing collections from different refreshes is not supported.
type Snapshot struct {
	Accounts     []models.Account
	Transactions []models.Transaction
	Categories   []models.BudgetCategory
	Statements   []models.MonthlyStatement
}

// LoadSnapshot fetches the four collections for the filter scope in
// parallel. The fetches are independent reads, so they fan out; a failure in
// any one of them fails the whole load, because a report computed over a
// partial snapshot would silently understate activity.
func LoadSnapshot(ctx context.Context, filter FilterSelection) (Snapshot, error) {
	if err := filter.Validate(); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Accounts, err = models.ListAccounts(gctx, models.ListQuery{Sort: "number", Limit: -1})
		return err
	})
	g.Go(func() error {
		var err error
		snap.Transactions, err = models.ListTransactions(gctx, models.ListQuery{
			Filter: transactionFilter(filter),
			Sort:   "date",
			Limit:  -1,
		})
		return err
	})
	g.Go(func() error {
		var err error
		snap.Categories, err = models.ListBudgetCategories(gctx, models.ListQuery{
			// Three-year window so multi-year comparison never needs a
			// second fetch.
			Filter: models.Range{Field: "fiscal_year", Min: filter.FiscalYear - 2, Max: filter.FiscalYear},
			Sort:   "category_name",
			Limit:  -1,
		})
		return err
	})
	g.Go(func() error {
		var err error
		snap.Statements, err = models.ListMonthlyStatements(gctx, models.ListQuery{
			Filter: models.Eq{Field: "fiscal_year", Value: filter.FiscalYear},
			Sort:   "statement_month",
			Limit:  -1,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// transactionFilter translates a FilterSelection into a record-store
// predicate tree. Unset selectors simply contribute no predicate.
func transactionFilter(filter FilterSelection) models.Predicate {
	preds := []models.Predicate{
		models.Eq{Field: "fiscal_year", Value: filter.FiscalYear},
	}
	if filter.AccountId > 0 {
		preds = append(preds, models.Eq{Field: "account_id", Value: filter.AccountId})
	}
	if filter.CategoryId > 0 {
		preds = append(preds, models.Eq{Field: "category_id", Value: filter.CategoryId})
	}
	if filter.Vendor != "" {
		preds = append(preds, models.Eq{Field: "vendor", Value: filter.Vendor})
	}
	if filter.StartMonth != MonthAll || filter.EndMonth != MonthAll {
		months := MonthsInRange(filter.StartMonth, filter.EndMonth)
		values := make([]any, len(months))
		for i, m := range months {
			values[i] = m
		}
		preds = append(preds, models.In{Field: "statement_month", Values: values})
	}
	return models.And{Preds: preds}
}

// CategoriesForYear narrows the snapshot's three-year category window to one
// fiscal year.
func (s Snapshot) CategoriesForYear(fiscalYear int) []models.BudgetCategory {
	var out []models.BudgetCategory
	for _, c := range s.Categories {
		if c.FiscalYear == fiscalYear {
			out = append(out, c)
		}
	}
	return out
}

// Metrics sums current statement balances by account role. The balance of an
// account is its latest statement's ending balance within the snapshot year.
func (s Snapshot) Metrics() AccountMetrics {
	metrics := AccountMetrics{
		OperatingBalance: decimal.Zero,
		ReserveBalance:   decimal.Zero,
		SpecialBalance:   decimal.Zero,
	}
	for _, account := range s.Accounts {
		balance, _, _ := latestStatement(s.Statements, account.ID)
		switch account.Type {
		case models.AccountTypeReserve:
			metrics.ReserveBalance = metrics.ReserveBalance.Add(balance)
		case models.AccountTypeSpecial:
			metrics.SpecialBalance = metrics.SpecialBalance.Add(balance)
		default:
			metrics.OperatingBalance = metrics.OperatingBalance.Add(balance)
		}
	}
	return metrics
}

// HasReserveAccount reports whether the association designates any reserve
// account at all.
func (s Snapshot) HasReserveAccount() bool {
	for _, account := range s.Accounts {
		if account.Type == models.AccountTypeReserve {
			return true
		}
	}
	return false
}
