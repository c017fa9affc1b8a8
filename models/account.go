package models

import (
	"context"
	"time"
)

// Account is one of the association's bank accounts. The engine treats
// accounts as immutable inputs; ownership lives with the portal record store.
type Account struct {
	ID            int         `gorm:"primary_key" json:"id"`
	AssociationId string      `gorm:"index" json:"association_id" binding:"required"`
	Number        string      `gorm:"size:64" json:"number"`
	Name          string      `gorm:"size:255" json:"name"`
	Type          AccountType `gorm:"not null;type:enum('operating','reserve','special');default:'operating'" json:"type"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a Account) GetId() int {
	return a.ID
}

var accountColumns = map[string]string{
	"association_id": "accounts.association_id",
	"id":             "accounts.id",
	"number":         "accounts.number",
	"name":           "accounts.name",
	"type":           "accounts.type",
}

func ListAccounts(ctx context.Context, q ListQuery) ([]Account, error) {
	return ListRecords[Account](ctx, q, accountColumns)
}
