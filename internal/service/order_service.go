package service

import (
	"context"
	"errors"
	"fmt"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	pkgerrors "go-ferreteria-api/pkg/errors"
	"go-ferreteria-api/pkg/logger"
	"go-ferreteria-api/pkg/metrics"

	"gorm.io/gorm"
)

const msgOrderNotFound = "Pedido no encontrado"

type OrderService interface {
	CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.TransferOrderResponse, error)
	ApproveOrder(ctx context.Context, id uint, approvals []model.ItemApproval) (*model.TransferOrderResponse, error)
	ShipOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error)
	ReceiveOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error)
	CancelOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error)
	GetOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.TransferOrderResponse, error)
}

type orderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	events      EventPublisher
	metrics     *metrics.Metrics
	logg        *logger.Logger
}

func NewOrderService(
	db *gorm.DB,
	oRepo repository.OrderRepository,
	bRepo repository.BranchRepository,
	pRepo repository.ProductRepository,
	events EventPublisher,
	m *metrics.Metrics,
	logg *logger.Logger,
) OrderService {
	return &orderService{
		db:          db,
		orderRepo:   oRepo,
		branchRepo:  bRepo,
		productRepo: pRepo,
		events:      publisherOrNoop(events),
		metrics:     m,
		logg:        logg,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req model.CreateOrderRequest) (*model.TransferOrderResponse, error) {
	if req.OriginBranchID == 0 || req.DestinationBranchID == 0 {
		return nil, pkgerrors.Validation("Sucursal origen y destino son obligatorias")
	}
	if req.OriginBranchID == req.DestinationBranchID {
		return nil, pkgerrors.Validation("La sucursal origen no puede ser igual a la destino")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.Validation("El pedido debe tener al menos un item")
	}

	branches, err := s.branchRepo.FindByIDs(ctx, req.OriginBranchID, req.DestinationBranchID)
	if err != nil {
		return nil, fmt.Errorf("load branches: %w", err)
	}
	origin, okOrigin := branches[req.OriginBranchID]
	destination, okDestination := branches[req.DestinationBranchID]
	if !okOrigin || !okDestination {
		return nil, pkgerrors.Validation("Una o ambas sucursales no existen")
	}
	if !origin.Active || !destination.Active {
		return nil, pkgerrors.Validation("Una o ambas sucursales están inactivas")
	}

	items := make([]model.TransferOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID == 0 || it.RequestedQty <= 0 {
			return nil, pkgerrors.Validation("Cada item debe tener producto_id y cantidad_solicitada")
		}
		exists, err := s.productRepo.Exists(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return nil, pkgerrors.Validation(fmt.Sprintf("Producto con ID %d no existe", it.ProductID))
		}
		items = append(items, model.TransferOrderItem{
			ProductID:    it.ProductID,
			RequestedQty: it.RequestedQty,
		})
	}

	order := &model.TransferOrder{
		OriginBranchID:      req.OriginBranchID,
		DestinationBranchID: req.DestinationBranchID,
		Status:              model.OrderPending,
		Notes:               req.Notes,
		Items:               items,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	resp, err := s.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderTransition(string(model.OrderPending))
	s.events.Publish(EventOrder, "order_created", resp)
	return resp, nil
}

func (s *orderService) ApproveOrder(ctx context.Context, id uint, approvals []model.ItemApproval) (*model.TransferOrderResponse, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderPending {
		return nil, pkgerrors.Validation("Solo se pueden aprobar pedidos pendientes")
	}

	requested := make(map[uint]int, len(order.Items))
	for _, it := range order.Items {
		requested[it.ProductID] = it.RequestedQty
	}
	for _, a := range approvals {
		if a.ApprovedQty < 0 {
			return nil, pkgerrors.Validation("La cantidad aprobada no puede ser negativa")
		}
		if want, ok := requested[a.ProductID]; ok && a.ApprovedQty > want {
			s.logg.Warn(s.logg.WithFields(ctx, logger.Fields{
				"pedido_id":           id,
				"producto_id":         a.ProductID,
				"cantidad_solicitada": want,
				"cantidad_aprobada":   a.ApprovedQty,
			}), "approved quantity exceeds requested quantity")
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.orderRepo.WithTx(tx)
		changed, err := repo.TransitionStatus(ctx, id, []model.OrderStatus{model.OrderPending}, model.OrderApproved)
		if err != nil {
			return fmt.Errorf("approve order: %w", err)
		}
		if !changed {
			return pkgerrors.Validation("Solo se pueden aprobar pedidos pendientes")
		}
		for _, a := range approvals {
			if _, err := repo.SetApprovedQty(ctx, id, a.ProductID, a.ApprovedQty); err != nil {
				return fmt.Errorf("set approved quantity: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.finishTransition(ctx, id, model.OrderApproved, "order_approved")
}

func (s *orderService) ShipOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error) {
	return s.transition(ctx, id,
		[]model.OrderStatus{model.OrderApproved}, model.OrderSent,
		"Solo se pueden enviar pedidos aprobados", "order_sent")
}

func (s *orderService) ReceiveOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error) {
	return s.transition(ctx, id,
		[]model.OrderStatus{model.OrderSent}, model.OrderReceived,
		"Solo se pueden recibir pedidos enviados", "order_received")
}

func (s *orderService) CancelOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error) {
	return s.transition(ctx, id,
		[]model.OrderStatus{model.OrderPending, model.OrderApproved}, model.OrderCancelled,
		"Solo se pueden cancelar pedidos pendientes o aprobados", "order_cancelled")
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*model.TransferOrderResponse, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := order.ToResponse()
	return &resp, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.TransferOrderResponse, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]model.TransferOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orders[i].ToResponse())
	}
	return out, nil
}

func (s *orderService) load(ctx context.Context, id uint) (*model.TransferOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.NotFound(msgOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// transition applies a status change guarded by the allowed source states.
func (s *orderService) transition(ctx context.Context, id uint, from []model.OrderStatus, to model.OrderStatus, rejectMsg, action string) (*model.TransferOrderResponse, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	changed, err := s.orderRepo.TransitionStatus(ctx, id, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	if !changed {
		return nil, pkgerrors.Validation(rejectMsg)
	}
	return s.finishTransition(ctx, id, to, action)
}

func (s *orderService) finishTransition(ctx context.Context, id uint, to model.OrderStatus, action string) (*model.TransferOrderResponse, error) {
	resp, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderTransition(string(to))
	s.events.Publish(EventOrder, action, resp)
	return resp, nil
}
