package repositories

import (
	"context"
	"time"

	"pos-kemasan/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRepository runs the read-only queries behind the reports. Grouping by
// day or month happens in Go so the same queries work on every driver.
type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(DB *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: DB}
}

type SalesTotals struct {
	TotalOrders  int64
	TotalRevenue decimal.Decimal
	NewCustomers int64
}

func (r *ReportRepository) SalesTotals(ctx context.Context, since time.Time) (SalesTotals, error) {
	var totals SalesTotals
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total_price), 0) AS total_revenue, COUNT(DISTINCT customer_name) AS new_customers").
		Where("created_at >= ?", since).
		Scan(&totals).Error
	return totals, translate("sales totals", err, "", "")
}

type OrderAmount struct {
	CreatedAt  time.Time
	TotalPrice decimal.Decimal
}

// OrderAmounts returns the created_at and total of every order since since,
// oldest first.
func (r *ReportRepository) OrderAmounts(ctx context.Context, since time.Time) ([]OrderAmount, error) {
	var rows []OrderAmount
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("created_at, total_price").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Scan(&rows).Error
	return rows, translate("order amounts", err, "", "")
}

func (r *ReportRepository) SalesDetail(ctx context.Context, since time.Time) ([]models.SalesDetailRow, error) {
	type row struct {
		OrderID            uint
		CreatedAt          time.Time
		CustomerName       string
		Status             models.OrderStatus
		CashierName        string
		ProductName        string
		Size               string
		Quantity           int
		PricePerItem       decimal.Decimal
		ProjectProductName string
		ProjectLabelName   string
	}
	var rows []row
	err := r.DB.WithContext(ctx).
		Table("orders").
		Select(`orders.id AS order_id, orders.created_at, orders.customer_name, orders.status,
			users.name AS cashier_name, order_items.product_name, order_items.size, order_items.quantity,
			order_items.price_per_item, order_items.project_product_name, order_items.project_label_name`).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("LEFT JOIN users ON users.id = orders.created_by").
		Where("orders.created_at >= ?", since).
		Order("orders.created_at DESC").
		Order("orders.id DESC").
		Order("order_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate("sales detail", err, "", "")
	}

	details := make([]models.SalesDetailRow, len(rows))
	for i, rw := range rows {
		details[i] = models.SalesDetailRow{
			OrderID:            rw.OrderID,
			CreatedAt:          rw.CreatedAt,
			CustomerName:       rw.CustomerName,
			Status:             rw.Status,
			CashierName:        rw.CashierName,
			ProductName:        rw.ProductName,
			Size:               rw.Size,
			Quantity:           rw.Quantity,
			PricePerItem:       rw.PricePerItem,
			Subtotal:           rw.PricePerItem.Mul(decimal.NewFromInt(int64(rw.Quantity))),
			ProjectProductName: rw.ProjectProductName,
			ProjectLabelName:   rw.ProjectLabelName,
		}
	}
	return details, nil
}

// CompletedOrders returns finished orders since since with the cashier name.
func (r *ReportRepository) CompletedOrders(ctx context.Context, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON users.id = orders.created_by").
		Where("orders.status = ? AND orders.created_at >= ?", models.StatusSelesai, since).
		Order("orders.created_at DESC").
		Find(&orders).Error
	return orders, translate("completed orders", err, "", "")
}
