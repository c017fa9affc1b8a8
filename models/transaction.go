package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the unit of analysis. Amount is stored as a non-negative
// magnitude; direction is carried by Type. Classification (transfer, revenue,
// expense) is derived by the engine, never stored.
type Transaction struct {
	ID            int             `gorm:"primary_key" json:"id"`
	AssociationId string          `gorm:"index" json:"association_id" binding:"required"`
	AccountId     int             `gorm:"index" json:"account_id"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Description   string          `gorm:"type:text" json:"description"`
	Vendor        string          `gorm:"size:255" json:"vendor"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Type          TransactionType `gorm:"not null;type:enum('deposit','withdrawal','transfer_in','transfer_out','fee')" json:"type"`
	CategoryId    int             `gorm:"index;default:0" json:"category_id"`
	IsViolation   bool            `gorm:"default:false" json:"is_violation"`
	ViolationType ViolationType   `gorm:"size:64;default:null" json:"violation_type"`
	// StatementMonth is a zero-padded two-digit month ("01".."12"); kept as a
	// string so lexicographic order matches chronological order.
	StatementMonth string    `gorm:"size:2;index" json:"statement_month"`
	FiscalYear     int       `gorm:"index" json:"fiscal_year"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t Transaction) GetId() int {
	return t.ID
}

var transactionColumns = map[string]string{
	"association_id":  "transactions.association_id",
	"id":              "transactions.id",
	"account_id":      "transactions.account_id",
	"date":            "transactions.date",
	"description":     "transactions.description",
	"vendor":          "transactions.vendor",
	"amount":          "transactions.amount",
	"type":            "transactions.type",
	"category_id":     "transactions.category_id",
	"is_violation":    "transactions.is_violation",
	"violation_type":  "transactions.violation_type",
	"statement_month": "transactions.statement_month",
	"fiscal_year":     "transactions.fiscal_year",
	// Relation path used by account-scoped filters.
	"account.type":   "accounts.type",
	"account.number": "accounts.number",
}

func ListTransactions(ctx context.Context, q ListQuery) ([]Transaction, error) {
	if filterUsesRelation(q.Filter, "account.") {
		return ListRecords[Transaction](ctx, q, transactionColumns,
			"JOIN accounts ON accounts.id = transactions.account_id")
	}
	return ListRecords[Transaction](ctx, q, transactionColumns)
}

// filterUsesRelation walks the predicate tree looking for field paths with the
// given relation prefix, so the join is only added when needed.
func filterUsesRelation(p Predicate, prefix string) bool {
	switch node := p.(type) {
	case nil:
		return false
	case Eq:
		return hasPrefix(node.Field, prefix)
	case In:
		return hasPrefix(node.Field, prefix)
	case Range:
		return hasPrefix(node.Field, prefix)
	case Not:
		return filterUsesRelation(node.Inner, prefix)
	case And:
		for _, inner := range node.Preds {
			if filterUsesRelation(inner, prefix) {
				return true
			}
		}
	case Or:
		for _, inner := range node.Preds {
			if filterUsesRelation(inner, prefix) {
				return true
			}
		}
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
