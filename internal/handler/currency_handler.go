package handler

import (
	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/service"
	"go-ferreteria-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type CurrencyHandler struct {
	currency service.CurrencyService
	catalog  service.CatalogService
}

func NewCurrencyHandler(currency service.CurrencyService, catalog service.CatalogService) *CurrencyHandler {
	return &CurrencyHandler{currency: currency, catalog: catalog}
}

func (h *CurrencyHandler) Convert(c *fiber.Ctx) error {
	var req model.ConvertRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Amount == nil || req.Source == "" || req.Target == "" {
		return badRequest(c, "Monto, moneda_origen y moneda_destino son requeridos")
	}
	if msg := validator.FirstError(&req); msg != "" {
		return badRequest(c, msg)
	}

	result, err := h.currency.Convert(c.UserContext(), *req.Amount, req.Source, req.Target)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *CurrencyHandler) GetRates(c *fiber.Ctx) error {
	rates, err := h.currency.ListRates(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rates)
}

func (h *CurrencyHandler) RefreshRates(c *fiber.Ctx) error {
	msg, err := h.currency.RefreshRates(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": msg})
}

func (h *CurrencyHandler) GetCatalog(c *fiber.Ctx) error {
	categoryID, err := queryUint(c, "categoria_id")
	if err != nil {
		return respondError(c, err)
	}

	catalog, err := h.catalog.Catalog(c.UserContext(), service.CatalogQuery{
		Currency:   c.Query("moneda"),
		CategoryID: categoryID,
		Search:     c.Query("buscar"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(catalog)
}
