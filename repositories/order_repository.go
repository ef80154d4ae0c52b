package repositories

import (
	"context"

	"pos-kemasan/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgOrderNotFound = "Pesanan tidak ditemukan."

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(DB *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: DB}
}

// Create inserts the order row only. Items are written by CreateItems so the
// caller controls both writes inside one transaction.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(order).Error
	return translate("create order", err, "", "")
}

func (r *OrderRepository) CreateItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).Create(&items).Error
	return translate("create order items", err, "", "")
}

// withCreator selects the order columns plus the creator's name. Deleted
// users keep their name on old orders.
func (r *OrderRepository) withCreator(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = orders.created_by")
}

// GetByID returns the order with its items in insertion order.
func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.withCreator(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Where("orders.id = ?", id).
		Take(&order).Error
	if err != nil {
		return nil, translate("get order", err, msgOrderNotFound, "")
	}
	order.HasDesign = models.AllDesigned(order.Items)
	return &order, nil
}

// GetStatus reads only the current status.
func (r *OrderRepository) GetStatus(ctx context.Context, id uint) (models.OrderStatus, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Select("id", "status").Where("id = ?", id).Take(&order).Error
	if err != nil {
		return "", translate("get order status", err, msgOrderNotFound, "")
	}
	return order.Status, nil
}

func (r *OrderRepository) Items(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, translate("get order items", err, "", "")
}

func (r *OrderRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, translate("check order", err, "", "")
	}
	return count > 0, nil
}

// List returns order summaries, newest first. With statuses it returns the
// matching work queue oldest first, so the order waiting longest is on top.
func (r *OrderRepository) List(ctx context.Context, statuses ...models.OrderStatus) ([]models.Order, error) {
	q := r.withCreator(ctx)
	if len(statuses) > 0 {
		q = q.Where("orders.status IN ?", statuses).Order("orders.created_at ASC").Order("orders.id ASC")
	} else {
		q = q.Order("orders.created_at DESC").Order("orders.id DESC")
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, translate("list orders", err, "", "")
	}
	if err := r.fillHasDesign(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) fillHasDesign(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	type designRow struct {
		OrderID uint
		Items   int64
		Pending int64
	}
	var rows []designRow
	err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_id, COUNT(*) AS items, SUM(CASE WHEN has_design = ? THEN 0 ELSE 1 END) AS pending", true).
		Where("order_id IN ?", ids).
		Group("order_id").
		Scan(&rows).Error
	if err != nil {
		return translate("load design flags", err, "", "")
	}

	designed := make(map[uint]bool, len(rows))
	for _, row := range rows {
		designed[row.OrderID] = row.Items > 0 && row.Pending == 0
	}
	for i := range orders {
		orders[i].HasDesign = designed[orders[i].ID]
	}
	return nil
}

// UpdateStatus moves the order from one status to another only if it is
// still in from. It returns false when another request changed it first.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, translate("update order status", res.Error, "", "")
	}
	return res.RowsAffected == 1, nil
}
