package services

import (
	"context"
	"fmt"

	"pos-kemasan/apperr"
	"pos-kemasan/logger"
	"pos-kemasan/metrics"
	"pos-kemasan/models"
	"pos-kemasan/repositories"

	"github.com/shopspring/decimal"
)

type OrderItemInput struct {
	ProductName        string          `json:"product_name" validate:"required"`
	Size               string          `json:"size"`
	Quantity           int             `json:"quantity" validate:"gt=0"`
	PricePerItem       decimal.Decimal `json:"price_per_item"`
	ProjectProductName string          `json:"project_product_name"`
	ProjectLabelName   string          `json:"project_label_name"`
	HalalNo            string          `json:"halal_no"`
	PirtNo             string          `json:"pirt_no"`
	NibNo              string          `json:"nib_no"`
	HasDesign          bool            `json:"has_design"`
}

type CreateOrderInput struct {
	CustomerName    string           `json:"customer_name" validate:"required"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
	Items           []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type OrderService struct {
	store   *repositories.Store
	metrics *metrics.Metrics
	reports *ReportService
}

func NewOrderService(store *repositories.Store, m *metrics.Metrics, reports *ReportService) *OrderService {
	return &OrderService{store: store, metrics: m, reports: reports}
}

// Create validates the input and writes the order, its items and the first
// history row in one transaction. Either all rows exist afterwards or none.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput, actor Actor) (*models.Order, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, len(in.Items))
	for i, it := range in.Items {
		if it.PricePerItem.IsNegative() {
			field := fmt.Sprintf("items[%d].price_per_item", i)
			return nil, apperr.Validation(field, field+" tidak boleh negatif.")
		}
		items[i] = models.OrderItem{
			ProductName:        it.ProductName,
			Size:               it.Size,
			Quantity:           it.Quantity,
			PricePerItem:       it.PricePerItem,
			ProjectProductName: it.ProjectProductName,
			ProjectLabelName:   it.ProjectLabelName,
			HalalNo:            it.HalalNo,
			PirtNo:             it.PirtNo,
			NibNo:              it.NibNo,
			HasDesign:          it.HasDesign,
		}
	}

	if !in.TotalPrice.IsPositive() {
		return nil, apperr.Validation("total_price", "total_price harus lebih besar dari 0.")
	}
	if sum := models.ItemsTotal(items); !in.TotalPrice.Equal(sum) {
		return nil, apperr.Validation("total_price",
			fmt.Sprintf("total_price %s tidak sama dengan jumlah item %s.", in.TotalPrice, sum))
	}

	order := &models.Order{
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		TotalPrice:      in.TotalPrice,
		Status:          models.StatusAntrianDesain,
		CreatedBy:       actor.UserID,
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Orders.CreateItems(ctx, items); err != nil {
			return err
		}
		return tx.History.Insert(ctx, order.ID, "", order.Status, actor.UserID)
	})
	if err != nil {
		return nil, apperr.Storage("create order", err)
	}

	order.Items = items
	order.HasDesign = models.AllDesigned(items)
	s.metrics.OrderCreated()
	s.reports.Invalidate(ctx)
	logger.FromCtx(ctx).Info("order created", "order_id", order.ID, "items", len(items), "total", order.TotalPrice.String())
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return s.store.Orders.GetByID(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders.List(ctx)
}

// Queue returns the orders waiting in one workflow stage, oldest first.
func (s *OrderService) Queue(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return s.store.Orders.List(ctx, status)
}

func (s *OrderService) History(ctx context.Context, id uint) ([]models.OrderStatusHistory, error) {
	if _, err := s.store.Orders.GetStatus(ctx, id); err != nil {
		return nil, err
	}
	return s.store.History.ByOrder(ctx, id)
}

// UpdateStatus moves an order along the workflow.
//
// Requesting the status the order already has is a no-op. Any pair not in
// the transition table is rejected, as is an edge the actor's role may not
// take. The write only applies while the order is still in the status that
// was read, so two racing requests cannot both succeed.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, requested string, actor Actor) (*models.Order, error) {
	to, ok := models.ParseOrderStatus(requested)
	if !ok {
		return nil, apperr.Validation("status", fmt.Sprintf("Status %q tidak dikenal.", requested))
	}

	var from models.OrderStatus
	changed := false
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		current, err := tx.Orders.GetStatus(ctx, id)
		if err != nil {
			return err
		}
		from = current
		if current == to {
			return nil
		}

		t, ok := models.FindTransition(current, to)
		if !ok {
			return apperr.InvalidTransition(string(current), string(to))
		}
		if !t.AllowedFor(actor.Role) {
			return apperr.Forbidden(fmt.Sprintf("Peran %s tidak boleh mengubah status dari %s ke %s.", actor.Role, current, to))
		}
		if t.RequiresDesign {
			items, err := tx.Orders.Items(ctx, id)
			if err != nil {
				return err
			}
			if !models.AllDesigned(items) {
				return apperr.InvalidTransition(string(current), string(to))
			}
		}

		ok, err = tx.Orders.UpdateStatus(ctx, id, current, to)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.InvalidTransition(string(current), string(to))
		}
		changed = true
		return tx.History.Insert(ctx, id, current, to, actor.UserID)
	})
	if err != nil {
		return nil, apperr.Storage("update order status", err)
	}

	if changed {
		s.metrics.StatusChanged(string(from), string(to))
		if to == models.StatusSelesai {
			s.reports.Invalidate(ctx)
		}
		logger.FromCtx(ctx).Info("order status changed", "order_id", id, "from", from, "to", to, "by", actor.UserID)
	}
	return s.store.Orders.GetByID(ctx, id)
}
