package finance

import (
	"fmt"
	"sort"

	"bitbucket.org/hoaworks/portal_backend/models"
	"github.com/shopspring/decimal"
)

type CashFlowTrend string

const (
	CashFlowTrendPositive CashFlowTrend = "positive"
	CashFlowTrendNegative CashFlowTrend = "negative"
	CashFlowTrendStable   CashFlowTrend = "stable"
)

// CashFlowProjection is one projected future month. Derived only; never
// written back to the record store.
type CashFlowProjection struct {
	Year              int             `json:"year"`
	Month             string          `json:"month"`
	BeginningBalance  decimal.Decimal `json:"beginning_balance"`
	ProjectedIncome   decimal.Decimal `json:"projected_income"`
	ProjectedExpenses decimal.Decimal `json:"projected_expenses"`
	NetCashFlow       decimal.Decimal `json:"net_cash_flow"`
	EndingBalance     decimal.Decimal `json:"ending_balance"`
	IsProjected       bool            `json:"is_projected"`
}

type CashFlowSummary struct {
	AvgMonthlyIncome    decimal.Decimal      `json:"avg_monthly_income"`
	AvgMonthlyExpenses  decimal.Decimal      `json:"avg_monthly_expenses"`
	AvgNetCashFlow      decimal.Decimal      `json:"avg_net_cash_flow"`
	AnchorBalance       decimal.Decimal      `json:"anchor_balance"`
	MonthsUntilNegative *int                 `json:"months_until_negative"`
	Trend               CashFlowTrend        `json:"trend"`
	Projections         []CashFlowProjection `json:"projections"`
}

type monthlyFlow struct {
	income   decimal.Decimal
	expenses decimal.Decimal
}

// ForecastCashFlow projects monthsAhead future months for one account from
// its historical monthly averages, anchored to the ending balance of the
// account's most recent statement. Months with no transactions at all are
// absent from the averages, not counted as zero. With no history the averages
// are zero and every projected month holds the anchor balance.
func ForecastCashFlow(transactions []models.Transaction, statements []models.MonthlyStatement, accountId int, monthsAhead int) CashFlowSummary {
	flows := map[string]*monthlyFlow{}
	for _, t := range transactions {
		if t.AccountId != accountId {
			continue
		}
		key := fmt.Sprintf("%04d-%s", t.FiscalYear, t.StatementMonth)
		flow, ok := flows[key]
		if !ok {
			flow = &monthlyFlow{income: decimal.Zero, expenses: decimal.Zero}
			flows[key] = flow
		}
		amount := ParseAmount(t.Amount)
		switch {
		case t.Type.IsInflow():
			flow.income = flow.income.Add(amount)
		case t.Type.IsOutflow():
			flow.expenses = flow.expenses.Add(amount)
		}
	}

	avgIncome, avgExpenses := decimal.Zero, decimal.Zero
	if len(flows) > 0 {
		for _, flow := range flows {
			avgIncome = avgIncome.Add(flow.income)
			avgExpenses = avgExpenses.Add(flow.expenses)
		}
		n := decimal.NewFromInt(int64(len(flows)))
		avgIncome = avgIncome.Div(n)
		avgExpenses = avgExpenses.Div(n)
	}
	avgNet := avgIncome.Sub(avgExpenses)

	anchorBalance, anchorMonth, anchorYear := latestStatement(statements, accountId)

	projections := make([]CashFlowProjection, 0, monthsAhead)
	running := anchorBalance
	for i := 1; i <= monthsAhead; i++ {
		offset := anchorMonth + i
		year := anchorYear + (offset-1)/12
		month := fmt.Sprintf("%02d", ((offset-1)%12)+1)

		ending := running.Add(avgNet)
		projections = append(projections, CashFlowProjection{
			Year:              year,
			Month:             month,
			BeginningBalance:  running,
			ProjectedIncome:   avgIncome,
			ProjectedExpenses: avgExpenses,
			NetCashFlow:       avgNet,
			EndingBalance:     ending,
			IsProjected:       true,
		})
		running = ending
	}

	summary := CashFlowSummary{
		AvgMonthlyIncome:   avgIncome,
		AvgMonthlyExpenses: avgExpenses,
		AvgNetCashFlow:     avgNet,
		AnchorBalance:      anchorBalance,
		Trend:              CashFlowTrendStable,
		Projections:        projections,
	}
	switch {
	case avgNet.IsPositive():
		summary.Trend = CashFlowTrendPositive
	case avgNet.IsNegative():
		summary.Trend = CashFlowTrendNegative
	}

	// Runway only makes sense when the account is bleeding money on average.
	if avgNet.IsNegative() {
		for i, p := range projections {
			if p.EndingBalance.IsNegative() {
				months := i + 1
				summary.MonthsUntilNegative = &months
				break
			}
		}
	}
	return summary
}

// latestStatement finds the anchor for a forecast: the highest
// (fiscal_year, statement_month) statement for the account. Month comparison
// is lexicographic, which is safe because months are zero-padded two-digit
// strings. No statement at all anchors at zero.
func latestStatement(statements []models.MonthlyStatement, accountId int) (balance decimal.Decimal, month int, year int) {
	scoped := make([]models.MonthlyStatement, 0, len(statements))
	for _, s := range statements {
		if s.AccountId == accountId {
			scoped = append(scoped, s)
		}
	}
	if len(scoped) == 0 {
		return decimal.Zero, 0, 0
	}

	sort.Slice(scoped, func(i, j int) bool {
		if scoped[i].FiscalYear != scoped[j].FiscalYear {
			return scoped[i].FiscalYear < scoped[j].FiscalYear
		}
		return scoped[i].StatementMonth < scoped[j].StatementMonth
	})

	last := scoped[len(scoped)-1]
	m := 0
	fmt.Sscanf(last.StatementMonth, "%d", &m)
	return last.EndingBalance, m, last.FiscalYear
}
