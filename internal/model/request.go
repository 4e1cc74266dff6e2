package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

type CreateProductRequest struct {
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	CategoryID  *uint           `json:"categoria_id"`
}

type UpdateStockRequest struct {
	Quantity *int `json:"cantidad"`
}

type CreateCustomerRequest struct {
	Name    string `json:"nombre"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"telefono" validate:"max=20"`
	Address string `json:"direccion"`
}

type CreateBranchRequest struct {
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
	Phone   string `json:"telefono" validate:"max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	// Active defaults to true when omitted.
	Active *bool `json:"activa"`
}

type CreateOrderRequest struct {
	OriginBranchID      uint               `json:"sucursal_origen_id"`
	DestinationBranchID uint               `json:"sucursal_destino_id"`
	Items               []OrderItemRequest `json:"items"`
	Notes               string             `json:"observaciones"`
}

type OrderItemRequest struct {
	ProductID    uint `json:"producto_id"`
	RequestedQty int  `json:"cantidad_solicitada"`
}

type ApproveOrderRequest struct {
	// Nil means the key was missing; an empty list is a valid approval.
	Approvals []ItemApproval `json:"aprobaciones"`
}

type ItemApproval struct {
	ProductID   uint `json:"producto_id"`
	ApprovedQty int  `json:"cantidad_aprobada"`
}

type StartPaymentRequest struct {
	Amount     decimal.Decimal `json:"monto"`
	CustomerID *uint           `json:"cliente_id"`
	Detail     string          `json:"detalle"`
}

type ConfirmPaymentRequest struct {
	Token  string        `json:"token"`
	Status PaymentStatus `json:"estado"`
}

type ConvertRequest struct {
	Amount *decimal.Decimal `json:"monto"`
	Source string           `json:"moneda_origen" validate:"currency_code"`
	Target string           `json:"moneda_destino" validate:"currency_code"`
}

type PaymentStartResponse struct {
	Token      string          `json:"token"`
	PaymentURL string          `json:"url_pago"`
	Amount     decimal.Decimal `json:"monto"`
	Status     PaymentStatus   `json:"estado"`
}

type ConversionResult struct {
	OriginalAmount  decimal.Decimal `json:"monto_original"`
	Source          string          `json:"moneda_origen"`
	ConvertedAmount decimal.Decimal `json:"monto_convertido"`
	Target          string          `json:"moneda_destino"`
	Rate            float64         `json:"tasa_cambio"`
	ConvertedAt     time.Time       `json:"fecha_conversion"`
}

type CatalogItem struct {
	ID          uint            `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	CategoryID  *uint           `json:"categoria_id"`
	CreatedAt   time.Time       `json:"fecha_creacion"`

	OriginalPrice   *decimal.Decimal `json:"precio_original,omitempty"`
	Currency        string           `json:"moneda"`
	Rate            *float64         `json:"tasa_cambio,omitempty"`
	ConversionError string           `json:"error_conversion,omitempty"`
	Category        *Category        `json:"categoria,omitempty"`
}

type CatalogFilters struct {
	CategoryID *uint   `json:"categoria_id"`
	Search     *string `json:"buscar"`
}

type CatalogResponse struct {
	Products      []CatalogItem  `json:"productos"`
	Categories    []Category     `json:"categorias"`
	TotalProducts int            `json:"total_productos"`
	Currency      string         `json:"moneda_consulta"`
	Filters       CatalogFilters `json:"filtros_aplicados"`
}
