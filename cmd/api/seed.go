package main

import (
	"context"

	"go-ferreteria-api/internal/repository"
	"go-ferreteria-api/internal/service"
	"go-ferreteria-api/pkg/logger"

	"gorm.io/gorm"
)

// seed loads the sample catalogue and fills the rate cache on first boot.
// Failures are logged; the server still starts.
func seed(ctx context.Context, db *gorm.DB, rates repository.RateRepository, currency service.CurrencyService, logg *logger.Logger) {
	summary, err := repository.SeedSampleData(ctx, db)
	if err != nil {
		logg.Error(ctx, "seed sample data", err)
	} else {
		logg.Info(logg.WithFields(ctx, logger.Fields{
			"categorias": summary.Categories,
			"productos":  summary.Products,
			"sucursales": summary.Branches,
			"clientes":   summary.Customers,
		}), "sample data seeded")
	}

	count, err := rates.Count(ctx)
	if err != nil {
		logg.Error(ctx, "count currency rates", err)
		return
	}
	if count > 0 {
		return
	}
	msg, err := currency.RefreshRates(ctx)
	if err != nil {
		logg.Error(ctx, "initial rate refresh", err)
		return
	}
	logg.Info(ctx, msg)
}
