package repository

import (
	"context"
	"errors"
	"time"

	"go-ferreteria-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RateRepository interface {
	// FindActive returns nil, nil when the pair has no active row.
	FindActive(ctx context.Context, source, target string) (*model.CurrencyRate, error)
	// CreateIfAbsent inserts the pair unless a row already exists.
	CreateIfAbsent(ctx context.Context, source, target string, rate float64) error
	// Upsert writes the rate and reactivates the pair.
	Upsert(ctx context.Context, source, target string, rate float64) error
	FindAllActive(ctx context.Context) ([]model.CurrencyRate, error)
	Count(ctx context.Context) (int64, error)
}

type rateRepo struct {
	db *gorm.DB
}

func NewRateRepo(db *gorm.DB) RateRepository {
	return &rateRepo{db}
}

var ratePairColumns = []clause.Column{{Name: "moneda_origen"}, {Name: "moneda_destino"}}

func (r *rateRepo) FindActive(ctx context.Context, source, target string) (*model.CurrencyRate, error) {
	var rate model.CurrencyRate
	err := r.db.WithContext(ctx).
		Where("moneda_origen = ? AND moneda_destino = ? AND activa = ?", source, target, true).
		First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepo) CreateIfAbsent(ctx context.Context, source, target string, rate float64) error {
	row := model.CurrencyRate{
		SourceCurrency: source,
		TargetCurrency: target,
		Rate:           rate,
		Active:         true,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: ratePairColumns, DoNothing: true}).
		Create(&row).Error
}

func (r *rateRepo) Upsert(ctx context.Context, source, target string, rate float64) error {
	row := model.CurrencyRate{
		SourceCurrency: source,
		TargetCurrency: target,
		Rate:           rate,
		Active:         true,
		UpdatedAt:      time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   ratePairColumns,
			DoUpdates: clause.AssignmentColumns([]string{"tasa_cambio", "activa", "fecha_actualizacion"}),
		}).
		Create(&row).Error
}

func (r *rateRepo) FindAllActive(ctx context.Context) ([]model.CurrencyRate, error) {
	var rates []model.CurrencyRate
	err := r.db.WithContext(ctx).Where("activa = ?", true).Order("id ASC").Find(&rates).Error
	return rates, err
}

func (r *rateRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CurrencyRate{}).Count(&count).Error
	return count, err
}
