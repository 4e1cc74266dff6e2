package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	pkgerrors "go-ferreteria-api/pkg/errors"
	"go-ferreteria-api/pkg/validator"

	"gorm.io/gorm"
)

const msgDuplicateEmail = "El email ya está registrado"

type CustomerService interface {
	CreateCustomer(ctx context.Context, req model.CreateCustomerRequest) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: repo}
}

func (s *customerService) CreateCustomer(ctx context.Context, req model.CreateCustomerRequest) (*model.Customer, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		return nil, pkgerrors.Validation("Nombre y email son requeridos")
	}
	if msg := validator.FirstError(&req); msg != "" {
		return nil, pkgerrors.Validation(msg)
	}

	existing, err := s.customerRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup customer email: %w", err)
	}
	if existing != nil {
		return nil, pkgerrors.Validation(msgDuplicateEmail)
	}

	customer := &model.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		// A concurrent insert can pass the lookup; the unique index decides.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.Validation(msgDuplicateEmail)
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}
