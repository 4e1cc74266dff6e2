package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	pkgerrors "go-ferreteria-api/pkg/errors"

	"gorm.io/gorm"
)

type ProductService interface {
	CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, search string) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	UpdateStock(ctx context.Context, id uint, qty int) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	events       EventPublisher
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, events EventPublisher) ProductService {
	return &productService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		events:       publisherOrNoop(events),
	}
}

func (s *productService) CreateCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.Validation("Nombre de categoría requerido")
	}

	category := &model.Category{Name: name, Description: req.Description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *productService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.Validation("El nombre es obligatorio")
	}
	// Prices are stored with cents, so the check runs on the rounded value.
	price := req.Price.Round(2)
	if !price.IsPositive() {
		return nil, pkgerrors.Validation("El precio debe ser mayor a 0")
	}
	if req.Stock < 0 {
		return nil, pkgerrors.Validation("El stock no puede ser negativo")
	}
	if req.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("check category: %w", err)
		}
		if !exists {
			return nil, pkgerrors.Validation(fmt.Sprintf("Categoría con ID %d no existe", *req.CategoryID))
		}
	}

	product := &model.Product{
		Name:        name,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.events.Publish(EventStock, "product_created", product)
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, search string) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx, repository.ProductFilter{Search: search})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Producto no encontrado")
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// UpdateStock replaces the stock with qty; it does not add to it.
func (s *productService) UpdateStock(ctx context.Context, id uint, qty int) (*model.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if qty < 0 {
		return nil, pkgerrors.Validation("La cantidad no puede ser negativa")
	}

	oldStock := product.Stock
	if err := s.productRepo.UpdateStock(ctx, id, qty); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound("Producto no encontrado")
		}
		return nil, fmt.Errorf("update stock: %w", err)
	}
	product.Stock = qty

	s.events.Publish(EventStock, "stock_updated", map[string]any{
		"producto_id": product.ID,
		"nombre":      product.Name,
		"old_stock":   oldStock,
		"new_stock":   qty,
	})
	return product, nil
}
