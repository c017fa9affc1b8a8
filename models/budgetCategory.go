package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetCategory is one spending bucket for one fiscal year. YearlyBudget is
// the authoritative annual figure; MonthlyBudget is a convenience average.
type BudgetCategory struct {
	ID            int             `gorm:"primary_key" json:"id"`
	AssociationId string          `gorm:"index" json:"association_id" binding:"required"`
	CategoryName  string          `gorm:"size:255;not null" json:"category_name"`
	MonthlyBudget decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"monthly_budget"`
	YearlyBudget  decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"yearly_budget"`
	Color         string          `gorm:"size:16" json:"color"`
	FiscalYear    int             `gorm:"index" json:"fiscal_year"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c BudgetCategory) GetId() int {
	return c.ID
}

var budgetCategoryColumns = map[string]string{
	"association_id": "budget_categories.association_id",
	"id":             "budget_categories.id",
	"category_name":  "budget_categories.category_name",
	"monthly_budget": "budget_categories.monthly_budget",
	"yearly_budget":  "budget_categories.yearly_budget",
	"fiscal_year":    "budget_categories.fiscal_year",
}

func ListBudgetCategories(ctx context.Context, q ListQuery) ([]BudgetCategory, error) {
	return ListRecords[BudgetCategory](ctx, q, budgetCategoryColumns)
}
