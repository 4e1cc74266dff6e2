package model

import "github.com/shopspring/decimal"

func init() {
	// Prices and amounts travel as JSON numbers (25.5), not strings ("25.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// BaseModel carries the auto-increment primary key shared by every table.
type BaseModel struct {
	ID uint `gorm:"primaryKey" json:"id"`
}
