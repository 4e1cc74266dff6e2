package repository

import (
	"context"
	"fmt"

	"go-ferreteria-api/internal/model"

	"gorm.io/gorm"
)

// SeedSummary reports how many rows each table received.
type SeedSummary struct {
	Categories int
	Products   int
	Branches   int
	Customers  int
}

// SeedSampleData fills each empty table with the sample rows. Tables that
// already hold data are left alone, so running it twice is harmless.
func SeedSampleData(ctx context.Context, db *gorm.DB) (SeedSummary, error) {
	var summary SeedSummary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := seedCategories(tx)
		if err != nil {
			return err
		}
		summary.Categories = len(categories)

		if summary.Products, err = seedProducts(tx, categories); err != nil {
			return err
		}
		if summary.Branches, err = seedTable(tx, model.SampleBranches()); err != nil {
			return err
		}
		if summary.Customers, err = seedTable(tx, model.SampleCustomers()); err != nil {
			return err
		}
		return nil
	})
	return summary, err
}

func isEmpty[T any](tx *gorm.DB) (bool, error) {
	var count int64
	if err := tx.Model(new(T)).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func seedTable[T any](tx *gorm.DB, rows []T) (int, error) {
	empty, err := isEmpty[T](tx)
	if err != nil || !empty {
		return 0, err
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("seed %T: %w", rows, err)
	}
	return len(rows), nil
}

func seedCategories(tx *gorm.DB) ([]model.Category, error) {
	empty, err := isEmpty[model.Category](tx)
	if err != nil || !empty {
		return nil, err
	}
	categories := model.SampleCategories()
	if err := tx.Create(&categories).Error; err != nil {
		return nil, fmt.Errorf("seed categories: %w", err)
	}
	return categories, nil
}

// seedProducts links products to the categories created in the same run.
// Without fresh categories the products go in uncategorized.
func seedProducts(tx *gorm.DB, categories []model.Category) (int, error) {
	empty, err := isEmpty[model.Product](tx)
	if err != nil || !empty {
		return 0, err
	}

	samples := model.SampleProducts()
	products := make([]model.Product, 0, len(samples))
	for _, s := range samples {
		p := s.Product
		if s.CategoryIndex < len(categories) {
			id := categories[s.CategoryIndex].ID
			p.CategoryID = &id
		}
		products = append(products, p)
	}
	if err := tx.Create(&products).Error; err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return len(products), nil
}
