package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStarted  PaymentStatus = "iniciada"
	PaymentApproved PaymentStatus = "aprobada"
	PaymentRejected PaymentStatus = "rechazada"
	PaymentVoided   PaymentStatus = "anulada"
)

// IsOutcome reports whether s is a status a confirmation may set.
func (s PaymentStatus) IsOutcome() bool {
	switch s {
	case PaymentApproved, PaymentRejected, PaymentVoided:
		return true
	}
	return false
}

// PaymentTransaction tracks one simulated WebPay payment from start to its
// single confirmation.
type PaymentTransaction struct {
	BaseModel
	Token      string          `gorm:"column:token_transaccion;type:varchar(200);uniqueIndex;not null" json:"token_transaccion"`
	Amount     decimal.Decimal `gorm:"column:monto;type:numeric(14,2);not null" json:"monto"`
	Status     PaymentStatus   `gorm:"column:estado;type:varchar(50);not null;index" json:"estado"`
	CreatedAt  time.Time       `gorm:"column:fecha_transaccion;autoCreateTime" json:"fecha_transaccion"`
	UpdatedAt  time.Time       `gorm:"column:fecha_actualizacion;autoUpdateTime" json:"fecha_actualizacion"`
	CustomerID *uint           `gorm:"column:cliente_id;index" json:"cliente_id"`
	Detail     string          `gorm:"column:detalle;type:text" json:"detalle"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (PaymentTransaction) TableName() string {
	return "transacciones_pago"
}
