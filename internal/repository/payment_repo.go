package repository

import (
	"context"

	"go-ferreteria-api/internal/model"

	"gorm.io/gorm"
)

type PaymentFilter struct {
	Status     model.PaymentStatus
	CustomerID *uint
}

type PaymentRepository interface {
	Create(ctx context.Context, txn *model.PaymentTransaction) error
	FindByToken(ctx context.Context, token string) (*model.PaymentTransaction, error)
	FindAll(ctx context.Context, filter PaymentFilter) ([]model.PaymentTransaction, error)
	// Confirm sets the outcome only while the transaction is still started.
	// It reports whether the row changed.
	Confirm(ctx context.Context, token string, outcome model.PaymentStatus) (bool, error)
}

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) PaymentRepository {
	return &paymentRepo{db}
}

func (r *paymentRepo) Create(ctx context.Context, txn *model.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *paymentRepo) FindByToken(ctx context.Context, token string) (*model.PaymentTransaction, error) {
	var txn model.PaymentTransaction
	if err := r.db.WithContext(ctx).First(&txn, "token_transaccion = ?", token).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *paymentRepo) FindAll(ctx context.Context, filter PaymentFilter) ([]model.PaymentTransaction, error) {
	query := r.db.WithContext(ctx)
	if filter.Status != "" {
		query = query.Where("estado = ?", filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("cliente_id = ?", *filter.CustomerID)
	}

	var txns []model.PaymentTransaction
	err := query.Order("fecha_transaccion DESC").Order("id DESC").Find(&txns).Error
	return txns, err
}

func (r *paymentRepo) Confirm(ctx context.Context, token string, outcome model.PaymentStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("token_transaccion = ? AND estado = ?", token, model.PaymentStarted).
		Update("estado", outcome)
	return res.RowsAffected > 0, res.Error
}
