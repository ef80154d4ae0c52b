package repositories

import (
	"context"
	"errors"

	"pos-kemasan/apperr"
	"pos-kemasan/models"

	"gorm.io/gorm"
)

const (
	msgCategoryNotFound   = "Kategori tidak ditemukan."
	msgCategoryExists     = "Nama kategori sudah ada."
	msgCategoryReferenced = "Kategori tidak dapat dihapus karena masih digunakan oleh bahan."
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(DB *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: DB}
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.MaterialCategory, error) {
	var categories []models.MaterialCategory
	err := r.DB.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, translate("list categories", err, "", "")
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uint) (*models.MaterialCategory, error) {
	var category models.MaterialCategory
	err := r.DB.WithContext(ctx).Where("id = ?", id).Take(&category).Error
	if err != nil {
		return nil, translate("get category", err, msgCategoryNotFound, "")
	}
	return &category, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*models.MaterialCategory, error) {
	var category models.MaterialCategory
	err := r.DB.WithContext(ctx).Where("name = ?", name).Take(&category).Error
	if err != nil {
		return nil, translate("get category by name", err, msgCategoryNotFound, "")
	}
	return &category, nil
}

func (r *CategoryRepository) NameTaken(ctx context.Context, name string, exceptID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&models.MaterialCategory{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translate("check category name", err, "", "")
	}
	return count > 0, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.MaterialCategory) error {
	err := r.DB.WithContext(ctx).Create(category).Error
	return translate("create category", err, "", msgCategoryExists)
}

func (r *CategoryRepository) Rename(ctx context.Context, id uint, name string) error {
	err := r.DB.WithContext(ctx).Model(&models.MaterialCategory{}).Where("id = ?", id).Update("name", name).Error
	return translate("rename category", err, "", msgCategoryExists)
}

// Delete removes a category that no material uses.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	var used int64
	if err := r.DB.WithContext(ctx).Model(&models.Material{}).Where("category_id = ?", id).Count(&used).Error; err != nil {
		return translate("count materials", err, "", "")
	}
	if used > 0 {
		return apperr.Conflict(msgCategoryReferenced)
	}

	res := r.DB.WithContext(ctx).Delete(&models.MaterialCategory{}, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
			return apperr.Conflict(msgCategoryReferenced)
		}
		return translate("delete category", res.Error, "", "")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(msgCategoryNotFound)
	}
	return nil
}
