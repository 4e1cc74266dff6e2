package repository

import (
	"context"

	"go-ferreteria-api/internal/model"

	"gorm.io/gorm"
)

type OrderFilter struct {
	OriginBranchID      *uint
	DestinationBranchID *uint
	Status              model.OrderStatus
}

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	// Create inserts the order together with its Items.
	Create(ctx context.Context, order *model.TransferOrder) error
	FindByID(ctx context.Context, id uint) (*model.TransferOrder, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]model.TransferOrder, error)
	SetApprovedQty(ctx context.Context, orderID, productID uint, qty int) (bool, error)
	// TransitionStatus moves the order to `to` only while its status is one of
	// `from`. It reports whether a row changed.
	TransitionStatus(ctx context.Context, id uint, from []model.OrderStatus, to model.OrderStatus) (bool, error)
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &orderRepo{db: tx}
}

func (r *orderRepo) Create(ctx context.Context, order *model.TransferOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product")
}

func (r *orderRepo) FindByID(ctx context.Context, id uint) (*model.TransferOrder, error) {
	var order model.TransferOrder
	if err := r.preloaded(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindAll(ctx context.Context, filter OrderFilter) ([]model.TransferOrder, error) {
	query := r.preloaded(ctx)
	if filter.OriginBranchID != nil {
		query = query.Where("sucursal_origen_id = ?", *filter.OriginBranchID)
	}
	if filter.DestinationBranchID != nil {
		query = query.Where("sucursal_destino_id = ?", *filter.DestinationBranchID)
	}
	if filter.Status != "" {
		query = query.Where("estado = ?", filter.Status)
	}

	var orders []model.TransferOrder
	err := query.Order("id ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) SetApprovedQty(ctx context.Context, orderID, productID uint, qty int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.TransferOrderItem{}).
		Where("pedido_id = ? AND producto_id = ?", orderID, productID).
		Update("cantidad_aprobada", qty)
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepo) TransitionStatus(ctx context.Context, id uint, from []model.OrderStatus, to model.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.TransferOrder{}).
		Where("id = ? AND estado IN ?", id, from).
		Update("estado", to)
	return res.RowsAffected > 0, res.Error
}
