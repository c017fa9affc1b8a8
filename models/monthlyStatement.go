package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyStatement is the ground-truth balance pair for one account and one
// statement month. The forecasting engine anchors to the most recent one.
type MonthlyStatement struct {
	ID               int             `gorm:"primary_key" json:"id"`
	AssociationId    string          `gorm:"index" json:"association_id" binding:"required"`
	AccountId        int             `gorm:"index" json:"account_id"`
	StatementMonth   string          `gorm:"size:2;index" json:"statement_month"`
	FiscalYear       int             `gorm:"index" json:"fiscal_year"`
	BeginningBalance decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"beginning_balance"`
	EndingBalance    decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"ending_balance"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s MonthlyStatement) GetId() int {
	return s.ID
}

var monthlyStatementColumns = map[string]string{
	"association_id":  "monthly_statements.association_id",
	"id":              "monthly_statements.id",
	"account_id":      "monthly_statements.account_id",
	"statement_month": "monthly_statements.statement_month",
	"fiscal_year":     "monthly_statements.fiscal_year",
}

func ListMonthlyStatements(ctx context.Context, q ListQuery) ([]MonthlyStatement, error) {
	return ListRecords[MonthlyStatement](ctx, q, monthlyStatementColumns)
}
