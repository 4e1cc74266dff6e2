package model

import "gorm.io/gorm"

// Migrate creates or updates every table. Parents come before children so
// foreign keys resolve on postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Product{},
		&Customer{},
		&Branch{},
		&TransferOrder{},
		&TransferOrderItem{},
		&PaymentTransaction{},
		&CurrencyRate{},
	)
}
