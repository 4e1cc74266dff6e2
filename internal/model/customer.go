package model

import "time"

// Customer is unique by email; the unique index backs the service pre-check.
type Customer struct {
	BaseModel
	Name         string    `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Email        string    `gorm:"column:email;type:varchar(120);uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"column:telefono;type:varchar(20)" json:"telefono"`
	Address      string    `gorm:"column:direccion;type:text" json:"direccion"`
	RegisteredAt time.Time `gorm:"column:fecha_registro;autoCreateTime" json:"fecha_registro"`
}

func (Customer) TableName() string {
	return "clientes"
}

type Branch struct {
	BaseModel
	Name    string `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
	Address string `gorm:"column:direccion;type:text;not null" json:"direccion"`
	Phone   string `gorm:"column:telefono;type:varchar(20)" json:"telefono"`
	Email   string `gorm:"column:email;type:varchar(120)" json:"email"`
	// No gorm default: a default tag would swallow an explicit false on insert.
	Active bool `gorm:"column:activa;not null" json:"activa"`
}

func (Branch) TableName() string {
	return "sucursales"
}
