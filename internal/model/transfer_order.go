package model

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pendiente"
	OrderApproved  OrderStatus = "aprobado"
	OrderSent      OrderStatus = "enviado"
	OrderReceived  OrderStatus = "recibido"
	OrderCancelled OrderStatus = "cancelado"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderApproved, OrderSent, OrderReceived, OrderCancelled:
		return true
	}
	return false
}

// TransferOrder moves goods from one branch to another once approved.
type TransferOrder struct {
	BaseModel
	OriginBranchID      uint        `gorm:"column:sucursal_origen_id;not null;index" json:"sucursal_origen_id"`
	DestinationBranchID uint        `gorm:"column:sucursal_destino_id;not null;index" json:"sucursal_destino_id"`
	Status              OrderStatus `gorm:"column:estado;type:varchar(50);not null;index" json:"estado"`
	CreatedAt           time.Time   `gorm:"column:fecha_pedido;autoCreateTime" json:"fecha_pedido"`
	UpdatedAt           time.Time   `gorm:"column:fecha_actualizacion;autoUpdateTime" json:"fecha_actualizacion"`
	Notes               string      `gorm:"column:observaciones;type:text" json:"observaciones"`

	OriginBranch      *Branch             `gorm:"foreignKey:OriginBranchID" json:"-"`
	DestinationBranch *Branch             `gorm:"foreignKey:DestinationBranchID" json:"-"`
	Items             []TransferOrderItem `gorm:"foreignKey:OrderID" json:"-"`
}

func (TransferOrder) TableName() string {
	return "pedidos_sucursal"
}

type TransferOrderItem struct {
	BaseModel
	OrderID      uint `gorm:"column:pedido_id;not null;index" json:"pedido_id"`
	ProductID    uint `gorm:"column:producto_id;not null;index" json:"producto_id"`
	RequestedQty int  `gorm:"column:cantidad_solicitada;not null" json:"cantidad_solicitada"`
	ApprovedQty  int  `gorm:"column:cantidad_aprobada;not null;default:0" json:"cantidad_aprobada"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (TransferOrderItem) TableName() string {
	return "items_pedido_sucursal"
}

// TransferOrderResponse is the API shape of an order with its items.
type TransferOrderResponse struct {
	ID                  uint                    `json:"id"`
	OriginBranchID      uint                    `json:"sucursal_origen_id"`
	DestinationBranchID uint                    `json:"sucursal_destino_id"`
	Status              OrderStatus             `json:"estado"`
	CreatedAt           time.Time               `json:"fecha_pedido"`
	UpdatedAt           time.Time               `json:"fecha_actualizacion"`
	Notes               string                  `json:"observaciones"`
	Items               []TransferOrderItemView `json:"items"`
}

type TransferOrderItemView struct {
	ID           uint    `json:"id"`
	OrderID      uint    `json:"pedido_id"`
	ProductID    uint    `json:"producto_id"`
	ProductName  *string `json:"producto_nombre"`
	RequestedQty int     `json:"cantidad_solicitada"`
	ApprovedQty  int     `json:"cantidad_aprobada"`
}

// ToResponse converts TransferOrder to TransferOrderResponse. Items keep their
// insertion order; Product must be preloaded for producto_nombre.
func (o *TransferOrder) ToResponse() TransferOrderResponse {
	items := make([]TransferOrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		view := TransferOrderItemView{
			ID:           it.ID,
			OrderID:      it.OrderID,
			ProductID:    it.ProductID,
			RequestedQty: it.RequestedQty,
			ApprovedQty:  it.ApprovedQty,
		}
		if it.Product != nil {
			name := it.Product.Name
			view.ProductName = &name
		}
		items = append(items, view)
	}
	return TransferOrderResponse{
		ID:                  o.ID,
		OriginBranchID:      o.OriginBranchID,
		DestinationBranchID: o.DestinationBranchID,
		Status:              o.Status,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Notes:               o.Notes,
		Items:               items,
	}
}
