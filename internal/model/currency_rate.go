package model

import "time"

// CurrencyRate caches a directional conversion rate. One row per pair.
type CurrencyRate struct {
	BaseModel
	SourceCurrency string    `gorm:"column:moneda_origen;type:varchar(3);not null;uniqueIndex:idx_rate_pair" json:"moneda_origen"`
	TargetCurrency string    `gorm:"column:moneda_destino;type:varchar(3);not null;uniqueIndex:idx_rate_pair" json:"moneda_destino"`
	Rate           float64   `gorm:"column:tasa_cambio;not null" json:"tasa_cambio"`
	UpdatedAt      time.Time `gorm:"column:fecha_actualizacion;autoUpdateTime" json:"fecha_actualizacion"`
	Active         bool      `gorm:"column:activa;not null" json:"activa"`
}

func (CurrencyRate) TableName() string {
	return "conversiones_moneda"
}
