package handler

import (
	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	"go-ferreteria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

func (h *PaymentHandler) StartTransaction(c *fiber.Ctx) error {
	var req model.StartPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Amount.IsZero() {
		return badRequest(c, "Monto requerido")
	}

	resp, err := h.service.StartTransaction(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *PaymentHandler) ConfirmTransaction(c *fiber.Ctx) error {
	var req model.ConfirmPaymentRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Token == "" {
		return badRequest(c, "Token requerido")
	}

	txn, err := h.service.ConfirmTransaction(c.UserContext(), req.Token, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txn)
}

func (h *PaymentHandler) GetTransactions(c *fiber.Ctx) error {
	customerID, err := queryUint(c, "cliente_id")
	if err != nil {
		return respondError(c, err)
	}

	txns, err := h.service.ListTransactions(c.UserContext(), repository.PaymentFilter{
		Status:     model.PaymentStatus(c.Query("estado")),
		CustomerID: customerID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(txns)
}
