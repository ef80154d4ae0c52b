package repositories

import (
	"context"
	"time"

	"pos-kemasan/models"

	"gorm.io/gorm"
)

type FinancialRepository struct {
	DB *gorm.DB
}

func NewFinancialRepository(DB *gorm.DB) *FinancialRepository {
	return &FinancialRepository{DB: DB}
}

func (r *FinancialRepository) Create(ctx context.Context, log *models.FinancialLog) error {
	err := r.DB.WithContext(ctx).Create(log).Error
	return translate("create financial log", err, "", "")
}

// ListSince returns entries created at or after since, newest first.
func (r *FinancialRepository) ListSince(ctx context.Context, since time.Time) ([]models.FinancialLog, error) {
	var logs []models.FinancialLog
	err := r.DB.WithContext(ctx).
		Model(&models.FinancialLog{}).
		Select("financial_logs.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = financial_logs.user_id").
		Where("financial_logs.created_at >= ?", since).
		Order("financial_logs.created_at DESC").
		Order("financial_logs.id DESC").
		Find(&logs).Error
	return logs, translate("list financial logs", err, "", "")
}
