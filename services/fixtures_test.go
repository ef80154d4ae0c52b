package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"pos-kemasan/database/dbtest"
	"pos-kemasan/models"
	"pos-kemasan/repositories"
	"pos-kemasan/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *repositories.Store {
	t.Helper()
	return repositories.NewStore(dbtest.Open(t))
}

func seedUser(t *testing.T, store *repositories.Store, role models.Role) Actor {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{
		Name:     "User " + string(role),
		Email:    fmt.Sprintf("%s@pos.test", role),
		Password: hash,
		Role:     role,
	}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return Actor{UserID: user.ID, Role: role}
}

func seedMaterial(t *testing.T, store *repositories.Store, name string, stock, threshold int64) *models.Material {
	t.Helper()
	ctx := context.Background()
	m := &models.Material{Name: name, Unit: "lembar", LowStockThreshold: decimal.NewFromInt(threshold)}
	require.NoError(t, store.Materials.Create(ctx, m))
	if stock != 0 {
		_, err := store.Materials.AdjustStock(ctx, m.ID, decimal.NewFromInt(stock))
		require.NoError(t, err)
	}
	return m
}

func stockOf(t *testing.T, store *repositories.Store, id uint) decimal.Decimal {
	t.Helper()
	m, err := store.Materials.GetByID(context.Background(), id)
	require.NoError(t, err)
	return m.Stock
}

func orderInput(customer string, designed bool) CreateOrderInput {
	return CreateOrderInput{
		CustomerName:  customer,
		CustomerPhone: "08123456789",
		TotalPrice:    decimal.NewFromInt(175000),
		Items: []OrderItemInput{
			{ProductName: "Standing Pouch", Size: "12x20", Quantity: 100, PricePerItem: decimal.NewFromInt(1500), HasDesign: designed},
			{ProductName: "Stiker Label", Size: "5x5", Quantity: 50, PricePerItem: decimal.NewFromInt(500), HasDesign: designed},
		},
	}
}

// recordingNotifier keeps every low stock batch it receives.
type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]models.Material
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, materials []models.Material) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, materials)
}

func (n *recordingNotifier) calls() [][]models.Material {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.batches
}
