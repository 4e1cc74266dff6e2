package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-ferreteria-api/internal/gateway"
	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	pkgerrors "go-ferreteria-api/pkg/errors"
	"go-ferreteria-api/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgAlreadyProcessed = "La transacción ya fue procesada"

type PaymentService interface {
	StartTransaction(ctx context.Context, req model.StartPaymentRequest) (*model.PaymentStartResponse, error)
	ConfirmTransaction(ctx context.Context, token string, outcome model.PaymentStatus) (*model.PaymentTransaction, error)
	ListTransactions(ctx context.Context, filter repository.PaymentFilter) ([]model.PaymentTransaction, error)
}

type paymentService struct {
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	gateway      gateway.PaymentGateway
	events       EventPublisher
	metrics      *metrics.Metrics
	newToken     func() string
}

func NewPaymentService(
	pRepo repository.PaymentRepository,
	cRepo repository.CustomerRepository,
	gw gateway.PaymentGateway,
	events EventPublisher,
	m *metrics.Metrics,
) PaymentService {
	return &paymentService{
		paymentRepo:  pRepo,
		customerRepo: cRepo,
		gateway:      gw,
		events:       publisherOrNoop(events),
		metrics:      m,
		newToken:     uuid.NewString,
	}
}

func (s *paymentService) StartTransaction(ctx context.Context, req model.StartPaymentRequest) (*model.PaymentStartResponse, error) {
	amount := req.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, pkgerrors.Validation("El monto debe ser mayor a 0")
	}
	if req.CustomerID != nil {
		exists, err := s.customerRepo.Exists(ctx, *req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("check customer: %w", err)
		}
		if !exists {
			return nil, pkgerrors.Validation(fmt.Sprintf("Cliente con ID %d no existe", *req.CustomerID))
		}
	}

	token := s.newToken()
	paymentURL, err := s.gateway.Start(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway start failed")
	}

	txn := &model.PaymentTransaction{
		Token:      token,
		Amount:     amount,
		Status:     model.PaymentStarted,
		CustomerID: req.CustomerID,
		Detail:     req.Detail,
	}
	if err := s.paymentRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.metrics.IncPayment(string(model.PaymentStarted))
	s.events.Publish(EventPayment, "payment_started", txn)
	return &model.PaymentStartResponse{
		Token:      token,
		PaymentURL: paymentURL,
		Amount:     txn.Amount,
		Status:     txn.Status,
	}, nil
}

// ConfirmTransaction settles a started payment. It succeeds once per token.
func (s *paymentService) ConfirmTransaction(ctx context.Context, token string, outcome model.PaymentStatus) (*model.PaymentTransaction, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, pkgerrors.Validation("Token requerido")
	}

	txn, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	if outcome == "" {
		outcome = model.PaymentApproved
	}
	if !outcome.IsOutcome() {
		return nil, pkgerrors.Validation(fmt.Sprintf("Estado de pago inválido: %s", outcome))
	}
	if txn.Status != model.PaymentStarted {
		return nil, pkgerrors.Validation(msgAlreadyProcessed)
	}

	final, err := s.gateway.Confirm(ctx, token, outcome)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment gateway confirm failed")
	}

	changed, err := s.paymentRepo.Confirm(ctx, token, final)
	if err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	if !changed {
		return nil, pkgerrors.Validation(msgAlreadyProcessed)
	}

	txn, err = s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	s.metrics.IncPayment(string(final))
	s.events.Publish(EventPayment, "payment_confirmed", txn)
	return txn, nil
}

func (s *paymentService) ListTransactions(ctx context.Context, filter repository.PaymentFilter) ([]model.PaymentTransaction, error) {
	txns, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return txns, nil
}

func (s *paymentService) find(ctx context.Context, token string) (*model.PaymentTransaction, error) {
	txn, err := s.paymentRepo.FindByToken(ctx, token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound("Transacción no encontrada")
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return txn, nil
}
