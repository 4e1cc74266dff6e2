package repository

import (
	"context"
	"testing"

	"go-ferreteria-api/internal/model"
	"go-ferreteria-api/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOrderRepoCreateAndTransition(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewOrderRepo(db)

	hammer := seedProduct(t, db, "Martillo", "", nil)
	saw := seedProduct(t, db, "Serrucho", "", nil)

	order := &model.TransferOrder{
		OriginBranchID:      1,
		DestinationBranchID: 2,
		Status:              model.OrderPending,
		Items: []model.TransferOrderItem{
			{ProductID: hammer.ID, RequestedQty: 5},
			{ProductID: saw.ID, RequestedQty: 2},
		},
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.WithTx(tx).Create(ctx, order)
	}))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Martillo", got.Items[0].Product.Name)
	assert.Equal(t, 0, got.Items[0].ApprovedQty)

	matched, err := repo.SetApprovedQty(ctx, order.ID, hammer.ID, 4)
	require.NoError(t, err)
	assert.True(t, matched)
	matched, err = repo.SetApprovedQty(ctx, order.ID, 999, 1)
	require.NoError(t, err)
	assert.False(t, matched)

	changed, err := repo.TransitionStatus(ctx, order.ID, []model.OrderStatus{model.OrderPending}, model.OrderApproved)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.TransitionStatus(ctx, order.ID, []model.OrderStatus{model.OrderPending}, model.OrderApproved)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err = repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderApproved, got.Status)
	assert.Equal(t, 4, got.Items[0].ApprovedQty)
	assert.Equal(t, 0, got.Items[1].ApprovedQty)
}

func TestOrderRepoFindAllFilters(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := NewOrderRepo(db)
	product := seedProduct(t, db, "Martillo", "", nil)

	for _, o := range []model.TransferOrder{
		{OriginBranchID: 1, DestinationBranchID: 2, Status: model.OrderPending},
		{OriginBranchID: 1, DestinationBranchID: 3, Status: model.OrderApproved},
		{OriginBranchID: 2, DestinationBranchID: 3, Status: model.OrderPending},
	} {
		o.Items = []model.TransferOrderItem{{ProductID: product.ID, RequestedQty: 1}}
		require.NoError(t, repo.Create(ctx, &o))
	}

	origin := uint(1)
	fromOne, err := repo.FindAll(ctx, OrderFilter{OriginBranchID: &origin})
	require.NoError(t, err)
	assert.Len(t, fromOne, 2)

	destination := uint(3)
	pending, err := repo.FindAll(ctx, OrderFilter{DestinationBranchID: &destination, Status: model.OrderPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, uint(2), pending[0].OriginBranchID)
	assert.Len(t, pending[0].Items, 1)
}
