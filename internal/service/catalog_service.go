package service

import (
	"context"
	"fmt"
	"strings"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	"go-ferreteria-api/pkg/logger"
)

type CatalogQuery struct {
	Currency   string
	CategoryID *uint
	Search     string
}

type CatalogService interface {
	Catalog(ctx context.Context, q CatalogQuery) (*model.CatalogResponse, error)
}

type catalogService struct {
	productRepo    repository.ProductRepository
	categoryRepo   repository.CategoryRepository
	currency       CurrencyService
	nativeCurrency string
	logg           *logger.Logger
}

func NewCatalogService(
	pRepo repository.ProductRepository,
	cRepo repository.CategoryRepository,
	currency CurrencyService,
	nativeCurrency string,
	logg *logger.Logger,
) CatalogService {
	return &catalogService{
		productRepo:    pRepo,
		categoryRepo:   cRepo,
		currency:       currency,
		nativeCurrency: strings.ToUpper(nativeCurrency),
		logg:           logg,
	}
}

// Catalog lists products priced in the requested currency. A failed
// conversion marks each affected item and keeps its native price; it never
// fails the listing.
func (s *catalogService) Catalog(ctx context.Context, q CatalogQuery) (*model.CatalogResponse, error) {
	currency := strings.ToUpper(strings.TrimSpace(q.Currency))
	if currency == "" {
		currency = s.nativeCurrency
	}

	products, err := s.productRepo.FindAll(ctx, repository.ProductFilter{
		Search:     q.Search,
		CategoryID: q.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("list catalog products: %w", err)
	}
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog categories: %w", err)
	}

	var (
		rate    float64
		rateErr error
	)
	converting := currency != s.nativeCurrency
	if converting && len(products) > 0 {
		rate, rateErr = s.currency.GetRate(ctx, s.nativeCurrency, currency)
		if rateErr != nil {
			s.logg.Warn(s.logg.WithFields(ctx, logger.Fields{
				"moneda": currency,
				"error":  rateErr.Error(),
			}), "catalog conversion unavailable")
		}
	}

	items := make([]model.CatalogItem, 0, len(products))
	for _, p := range products {
		item := model.CatalogItem{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			CategoryID:  p.CategoryID,
			CreatedAt:   p.CreatedAt,
			Currency:    s.nativeCurrency,
			Category:    p.Category,
		}
		if converting {
			original := p.Price
			item.OriginalPrice = &original
			if rateErr != nil {
				item.ConversionError = fmt.Sprintf("No se pudo convertir a %s", currency)
			} else {
				r := rate
				item.Price = ConvertAmount(p.Price, rate)
				item.Currency = currency
				item.Rate = &r
			}
		}
		items = append(items, item)
	}

	resp := &model.CatalogResponse{
		Products:      items,
		Categories:    categories,
		TotalProducts: len(items),
		Currency:      currency,
		Filters:       model.CatalogFilters{CategoryID: q.CategoryID},
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		resp.Filters.Search = &search
	}
	if resp.Categories == nil {
		resp.Categories = []model.Category{}
	}
	return resp, nil
}
