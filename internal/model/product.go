package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name        string `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Description string `gorm:"column:descripcion;type:text" json:"descripcion"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string {
	return "categorias"
}

type Product struct {
	BaseModel
	Name        string          `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Description string          `gorm:"column:descripcion;type:text" json:"descripcion"`
	Price       decimal.Decimal `gorm:"column:precio;type:numeric(12,2);not null" json:"precio"`
	Stock       int             `gorm:"column:stock;not null;default:0" json:"stock"`
	CategoryID  *uint           `gorm:"column:categoria_id;index" json:"categoria_id"`
	CreatedAt   time.Time       `gorm:"column:fecha_creacion;autoCreateTime" json:"fecha_creacion"`

	// Relasi
	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Product) TableName() string {
	return "productos"
}
