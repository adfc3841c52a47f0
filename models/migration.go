package models

import (
	"log"

	"bitbucket.org/mmdatafocus/recon_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Order{},
		&PaymentAttempt{},
		&SettlementRecord{},
		&ReconciliationRun{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
