package services

import (
	"context"
	"errors"
	"testing"

	"pos-kemasan/apperr"
	"pos-kemasan/metrics"
	"pos-kemasan/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateOrderWritesItemsAndFirstHistoryRow(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	m := metrics.New()
	svc := NewOrderService(store, m, nil)

	order, err := svc.Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusAntrianDesain, order.Status)
	assert.Len(t, order.Items, 2)
	assert.False(t, order.HasDesign)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCreated))

	got, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Toko Makmur", got.CustomerName)
	assert.Equal(t, "User kasir", got.CreatedByName)
	assert.True(t, decimal.NewFromInt(175000).Equal(got.TotalPrice))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Standing Pouch", got.Items[0].ProductName)
	assert.True(t, models.ItemsTotal(got.Items).Equal(got.TotalPrice),
		"total %s != items %s", got.TotalPrice, models.ItemsTotal(got.Items))

	again, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	history, err := svc.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.OrderStatus(""), history[0].FromStatus)
	assert.Equal(t, models.StatusAntrianDesain, history[0].ToStatus)
	assert.Equal(t, kasir.UserID, history[0].ChangedBy)
}

func TestCreateOrderRejectsTotalMismatch(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	svc := NewOrderService(store, nil, nil)

	in := orderInput("Toko Makmur", false)
	in.TotalPrice = decimal.NewFromInt(170000)

	_, err := svc.Create(ctx, in, kasir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "total_price", apperr.FieldOf(err))
	assert.Zero(t, countRows(t, store.DB, &models.Order{}))
}

func TestCreateOrderValidation(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	svc := NewOrderService(store, nil, nil)

	noItems := orderInput("Toko Makmur", false)
	noItems.Items = nil
	_, err := svc.Create(ctx, noItems, kasir)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Equal(t, "items", apperr.FieldOf(err))

	noCustomer := orderInput("", false)
	_, err = svc.Create(ctx, noCustomer, kasir)
	assert.Equal(t, "customer_name", apperr.FieldOf(err))

	zeroQty := orderInput("Toko Makmur", false)
	zeroQty.Items[1].Quantity = 0
	_, err = svc.Create(ctx, zeroQty, kasir)
	assert.Equal(t, "items[1].quantity", apperr.FieldOf(err))

	negative := orderInput("Toko Makmur", false)
	negative.Items[0].PricePerItem = decimal.NewFromInt(-1)
	_, err = svc.Create(ctx, negative, kasir)
	assert.Equal(t, "items[0].price_per_item", apperr.FieldOf(err))

	assert.Zero(t, countRows(t, store.DB, &models.Order{}))
}

func TestCreateOrderRollsBackWhenItemsFail(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	svc := NewOrderService(store, nil, nil)

	require.NoError(t, store.DB.Callback().Create().Before("gorm:create").Register("test:fail_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := svc.Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.Error(t, err)
	assert.Equal(t, apperr.KindStorage, apperr.KindOf(err))
	assert.Zero(t, countRows(t, store.DB, &models.Order{}))
	assert.Zero(t, countRows(t, store.DB, &models.OrderItem{}))
	assert.Zero(t, countRows(t, store.DB, &models.OrderStatusHistory{}))
}

func TestUpdateStatusWalksTheWorkflow(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	desainer := seedUser(t, store, models.RoleDesainer)
	operator := seedUser(t, store, models.RoleOperator)
	m := metrics.New()
	svc := NewOrderService(store, m, nil)

	order, err := svc.Create(ctx, orderInput("CV Sumber Rejeki", false), kasir)
	require.NoError(t, err)

	steps := []struct {
		to    models.OrderStatus
		actor Actor
	}{
		{models.StatusProsesDesain, desainer},
		{models.StatusAntrianProduksi, desainer},
		{models.StatusProsesProduksi, operator},
		{models.StatusSiapDiambil, operator},
		{models.StatusSelesai, kasir},
	}
	for _, step := range steps {
		got, err := svc.UpdateStatus(ctx, order.ID, string(step.to), step.actor)
		require.NoError(t, err, step.to)
		assert.Equal(t, step.to, got.Status)
	}

	history, err := svc.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 6)
	assert.Equal(t, models.StatusProsesProduksi, history[4].FromStatus)
	assert.Equal(t, models.StatusSiapDiambil, history[4].ToStatus)
	assert.Equal(t, models.StatusSelesai, history[5].ToStatus)
	assert.Equal(t, "User kasir", history[5].ChangedByName)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusTransitions.WithLabelValues(string(models.StatusSiapDiambil), string(models.StatusSelesai))))

	_, err = svc.UpdateStatus(ctx, order.ID, string(models.StatusSiapDiambil), kasir)
	assert.True(t, errors.Is(err, apperr.ErrInvalidTransition), "terminal status has no outgoing edge")
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	svc := NewOrderService(store, nil, nil)

	order, err := svc.Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)

	got, err := svc.UpdateStatus(ctx, order.ID, string(models.StatusAntrianDesain), kasir)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAntrianDesain, got.Status)
	assert.EqualValues(t, 1, countRows(t, store.DB, &models.OrderStatusHistory{}))
}

func TestUpdateStatusRejections(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	desainer := seedUser(t, store, models.RoleDesainer)
	svc := NewOrderService(store, nil, nil)

	order, err := svc.Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, "Dibatalkan", desainer)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.UpdateStatus(ctx, order.ID, string(models.StatusSelesai), kasir)
	assert.True(t, errors.Is(err, apperr.ErrInvalidTransition))

	_, err = svc.UpdateStatus(ctx, order.ID, string(models.StatusProsesDesain), kasir)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	_, err = svc.UpdateStatus(ctx, 9999, string(models.StatusProsesDesain), desainer)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	got, err := svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAntrianDesain, got.Status)
	assert.EqualValues(t, 1, countRows(t, store.DB, &models.OrderStatusHistory{}))
}

func TestDesignSkipNeedsEveryItemDesigned(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	desainer := seedUser(t, store, models.RoleDesainer)
	svc := NewOrderService(store, nil, nil)

	partly := orderInput("Toko A", true)
	partly.Items[1].HasDesign = false
	order, err := svc.Create(ctx, partly, kasir)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, string(models.StatusAntrianProduksi), desainer)
	assert.True(t, errors.Is(err, apperr.ErrInvalidTransition))

	ready, err := svc.Create(ctx, orderInput("Toko B", true), kasir)
	require.NoError(t, err)
	assert.True(t, ready.HasDesign)
	got, err := svc.UpdateStatus(ctx, ready.ID, string(models.StatusAntrianProduksi), desainer)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAntrianProduksi, got.Status)
}

func TestConditionalStatusWriteLosesToConcurrentChange(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	svc := NewOrderService(store, nil, nil)

	order, err := svc.Create(ctx, orderInput("Toko Makmur", false), kasir)
	require.NoError(t, err)

	ok, err := store.Orders.UpdateStatus(ctx, order.ID, models.StatusAntrianDesain, models.StatusProsesDesain)
	require.NoError(t, err)
	assert.True(t, ok)

	// A second writer that read the old status must not apply.
	ok, err = store.Orders.UpdateStatus(ctx, order.ID, models.StatusAntrianDesain, models.StatusAntrianProduksi)
	require.NoError(t, err)
	assert.False(t, ok)

	status, err := store.Orders.GetStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProsesDesain, status)
}

func TestQueuesAndList(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	kasir := seedUser(t, store, models.RoleKasir)
	desainer := seedUser(t, store, models.RoleDesainer)
	svc := NewOrderService(store, nil, nil)

	first, err := svc.Create(ctx, orderInput("Pertama", true), kasir)
	require.NoError(t, err)
	second, err := svc.Create(ctx, orderInput("Kedua", false), kasir)
	require.NoError(t, err)
	third, err := svc.Create(ctx, orderInput("Ketiga", false), kasir)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, third.ID, string(models.StatusProsesDesain), desainer)
	require.NoError(t, err)

	queue, err := svc.Queue(ctx, models.StatusAntrianDesain)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, first.ID, queue[0].ID)
	assert.Equal(t, second.ID, queue[1].ID)
	assert.True(t, queue[0].HasDesign)
	assert.False(t, queue[1].HasDesign)

	inProgress, err := svc.Queue(ctx, models.StatusProsesDesain)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, third.ID, inProgress[0].ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
