package repository

import (
	"context"
	"strings"

	"go-ferreteria-api/internal/model"

	"gorm.io/gorm"
)

// ProductFilter narrows product listings. Zero values mean no filter.
type ProductFilter struct {
	Search     string
	CategoryID *uint
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	Exists(ctx context.Context, id uint) (bool, error)
	UpdateStock(ctx context.Context, id uint, stock int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// likeEscaper makes the search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// FindAll preloads Category so the catalog can embed it without a second query.
func (r *productRepo) FindAll(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Preload("Category")

	if filter.CategoryID != nil {
		query = query.Where("categoria_id = ?", *filter.CategoryID)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		query = query.Where(`LOWER(nombre) LIKE ? ESCAPE '\' OR LOWER(descripcion) LIKE ? ESCAPE '\'`, like, like)
	}

	var products []model.Product
	err := query.Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// UpdateStock sets stock to an absolute value. It returns
// gorm.ErrRecordNotFound when no row matched.
func (r *productRepo) UpdateStock(ctx context.Context, id uint, stock int) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
