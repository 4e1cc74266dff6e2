package handler

import (
	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customers service.CustomerService
	branches  service.BranchService
}

func NewCustomerHandler(customers service.CustomerService, branches service.BranchService) *CustomerHandler {
	return &CustomerHandler{customers: customers, branches: branches}
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customers.ListCustomers(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req model.CreateCustomerRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	customer, err := h.customers.CreateCustomer(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func (h *CustomerHandler) GetBranches(c *fiber.Ctx) error {
	branches, err := h.branches.ListBranches(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(branches)
}

func (h *CustomerHandler) CreateBranch(c *fiber.Ctx) error {
	var req model.CreateBranchRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	branch, err := h.branches.CreateBranch(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(branch)
}
