package models

import (
	"bitbucket.org/hoaworks/portal_backend/config"
	"bitbucket.org/hoaworks/portal_backend/utils"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Account{},
		&Transaction{},
		&BudgetCategory{},
		&MonthlyStatement{},
	)
	utils.ErrorPanic(err)
}
