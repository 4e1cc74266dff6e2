package handler

import (
	"context"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	"go-ferreteria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	origin, err := queryUint(c, "sucursal_origen")
	if err != nil {
		return respondError(c, err)
	}
	destination, err := queryUint(c, "sucursal_destino")
	if err != nil {
		return respondError(c, err)
	}

	orders, err := h.service.ListOrders(c.UserContext(), repository.OrderFilter{
		OriginBranchID:      origin,
		DestinationBranchID: destination,
		Status:              model.OrderStatus(c.Query("estado")),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	return h.withID(c, fiber.StatusOK, h.service.GetOrder)
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req model.CreateOrderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	order, err := h.service.CreateOrder(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) ApproveOrder(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req model.ApproveOrderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Approvals == nil {
		return badRequest(c, "Aprobaciones requeridas")
	}

	order, err := h.service.ApproveOrder(c.UserContext(), id, req.Approvals)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (h *OrderHandler) ShipOrder(c *fiber.Ctx) error {
	return h.withID(c, fiber.StatusOK, h.service.ShipOrder)
}

func (h *OrderHandler) ReceiveOrder(c *fiber.Ctx) error {
	return h.withID(c, fiber.StatusOK, h.service.ReceiveOrder)
}

func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	return h.withID(c, fiber.StatusOK, h.service.CancelOrder)
}

func (h *OrderHandler) withID(c *fiber.Ctx, status int, fn func(context.Context, uint) (*model.TransferOrderResponse, error)) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	order, err := fn(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(status).JSON(order)
}
