package repositories

import (
	"context"

	"pos-kemasan/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgMaterialNotFound = "Bahan tidak ditemukan."
	msgMaterialExists   = "Nama bahan sudah ada."
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(DB *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: DB}
}

func (r *MaterialRepository) GetAll(ctx context.Context) ([]models.Material, error) {
	var materials []models.Material
	err := r.DB.WithContext(ctx).Preload("Category").Order("name").Find(&materials).Error
	return materials, translate("list materials", err, "", "")
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	var material models.Material
	err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", id).Take(&material).Error
	if err != nil {
		return nil, translate("get material", err, msgMaterialNotFound, "")
	}
	return &material, nil
}

func (r *MaterialRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Material, error) {
	var materials []models.Material
	if len(ids) == 0 {
		return materials, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Order("name").Find(&materials).Error
	return materials, translate("get materials", err, "", "")
}

// NameTaken compares names case-insensitively on every driver.
func (r *MaterialRepository) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&models.Material{}).Where("LOWER(name) = LOWER(?)", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translate("check material name", err, "", "")
	}
	return count > 0, nil
}

// Create inserts the material. Stock is always written as zero; opening
// stock goes through AdjustStock plus a log row.
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	material.Stock = decimal.Zero
	err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(material).Error
	return translate("create material", err, "", msgMaterialExists)
}

// UpdateDetails writes the descriptive columns. Stock is never touched here.
func (r *MaterialRepository) UpdateDetails(ctx context.Context, material *models.Material) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Material{}).
		Where("id = ?", material.ID).
		Updates(map[string]interface{}{
			"name":                material.Name,
			"unit":                material.Unit,
			"category_id":         material.CategoryID,
			"low_stock_threshold": material.LowStockThreshold,
		})
	if res.Error != nil {
		return translate("update material", res.Error, "", msgMaterialExists)
	}
	return nil
}

// AdjustStock adds delta (negative for usage) to stock in one statement, so
// concurrent adjustments never lose an update. It returns the number of rows
// changed: zero means the material does not exist.
func (r *MaterialRepository) AdjustStock(ctx context.Context, id uint, delta decimal.Decimal) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Material{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return 0, translate("adjust stock", res.Error, "", "")
	}
	return res.RowsAffected, nil
}

func (r *MaterialRepository) InsertLogs(ctx context.Context, logs []models.MaterialLog) error {
	if len(logs) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).Create(&logs).Error
	return translate("insert material logs", err, "", "")
}

// Logs returns the movements of one material, newest first.
func (r *MaterialRepository) Logs(ctx context.Context, materialID uint) ([]models.MaterialLog, error) {
	var logs []models.MaterialLog
	err := r.DB.WithContext(ctx).
		Model(&models.MaterialLog{}).
		Select("material_logs.*, materials.name AS material_name, users.name AS user_name").
		Joins("JOIN materials ON materials.id = material_logs.material_id").
		Joins("LEFT JOIN users ON users.id = material_logs.user_id").
		Where("material_logs.material_id = ?", materialID).
		Order("material_logs.created_at DESC").
		Order("material_logs.id DESC").
		Find(&logs).Error
	return logs, translate("list material logs", err, "", "")
}

// LowStock returns the given materials whose stock is at or below their
// threshold.
func (r *MaterialRepository) LowStock(ctx context.Context, ids []uint) ([]models.Material, error) {
	var materials []models.Material
	if len(ids) == 0 {
		return materials, nil
	}
	err := r.DB.WithContext(ctx).
		Where("id IN ? AND stock <= low_stock_threshold", ids).
		Order("name").
		Find(&materials).Error
	return materials, translate("find low stock", err, "", "")
}
