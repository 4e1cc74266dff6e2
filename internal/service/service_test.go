package service

import (
	"context"
	"sync"
	"testing"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/repository"
	"go-ferreteria-api/internal/testdb"
	pkgerrors "go-ferreteria-api/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type publishedEvent struct {
	Type   string
	Action string
	Data   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (r *recordingPublisher) Publish(eventType, action string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, publishedEvent{Type: eventType, Action: action, Data: data})
}

func (r *recordingPublisher) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type fixture struct {
	db        *gorm.DB
	events    *recordingPublisher
	products  ProductService
	customers CustomerService
	branches  BranchService
	orders    OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	events := &recordingPublisher{}
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	branchRepo := repository.NewBranchRepo(db)

	return &fixture{
		db:        db,
		events:    events,
		products:  NewProductService(productRepo, categoryRepo, events),
		customers: NewCustomerService(repository.NewCustomerRepo(db)),
		branches:  NewBranchService(branchRepo),
		orders:    NewOrderService(db, repository.NewOrderRepo(db), branchRepo, productRepo, events, nil, nil),
	}
}

func (f *fixture) product(t *testing.T, name string) *model.Product {
	t.Helper()
	p, err := f.products.CreateProduct(context.Background(), model.CreateProductRequest{
		Name:  name,
		Price: decimal.RequireFromString("1000"),
		Stock: 5,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) branch(t *testing.T, name string, active bool) *model.Branch {
	t.Helper()
	b, err := f.branches.CreateBranch(context.Background(), model.CreateBranchRequest{
		Name:    name,
		Address: "Calle " + name,
		Active:  &active,
	})
	require.NoError(t, err)
	return b
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code(), err.Error())
}
