package repositories

import (
	"context"

	"pos-kemasan/models"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(DB *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: DB}
}

// Insert appends one status change for an order.
func (r *HistoryRepository) Insert(ctx context.Context, orderID uint, from, to models.OrderStatus, actor uint) error {
	history := models.OrderStatusHistory{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  actor,
	}
	err := r.DB.WithContext(ctx).Create(&history).Error
	return translate("insert status history", err, "", "")
}

func (r *HistoryRepository) ByOrder(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	var rows []models.OrderStatusHistory
	err := r.DB.WithContext(ctx).
		Model(&models.OrderStatusHistory{}).
		Select("order_status_histories.*, users.name AS changed_by_name").
		Joins("LEFT JOIN users ON users.id = order_status_histories.changed_by").
		Where("order_status_histories.order_id = ?", orderID).
		Order("order_status_histories.created_at").
		Order("order_status_histories.id").
		Find(&rows).Error
	return rows, translate("list status history", err, "", "")
}
