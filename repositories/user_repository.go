package repositories

import (
	"context"
	"fmt"

	"pos-kemasan/models"

	"gorm.io/gorm"
)

const (
	msgUserNotFound = "Pengguna tidak ditemukan."
	msgEmailTaken   = "Email sudah terdaftar."

	emailColumnSize = 100
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(DB *gorm.DB) *UserRepository {
	return &UserRepository{DB: DB}
}

// Create user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	return translate("create user", err, "", msgEmailTaken)
}

// Get user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, translate("get user", err, msgUserNotFound, "")
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate("get user by email", err, msgUserNotFound, "")
	}
	return &user, nil
}

// Get all users
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Order("name").Find(&users).Error
	return users, translate("list users", err, "", "")
}

// EmailTaken reports whether another user already uses email.
func (r *UserRepository) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translate("check email", err, "", "")
	}
	return count > 0, nil
}

// Update user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	err := r.DB.WithContext(ctx).Save(user).Error
	return translate("update user", err, "", msgEmailTaken)
}

// Delete soft-deletes the user. The row stays for order and report joins,
// but its email is rewritten so the address can be registered again.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return translate("delete user", err, msgUserNotFound, "")
		}
		if err := tx.Model(&user).Update("email", releasedEmail(user.ID, user.Email)).Error; err != nil {
			return translate("release user email", err, "", "")
		}
		return translate("delete user", tx.Delete(&user).Error, "", "")
	})
}

// releasedEmail is unique per user id and fits the email column.
func releasedEmail(id uint, email string) string {
	released := fmt.Sprintf("deleted-%d+%s", id, email)
	if len(released) > emailColumnSize {
		released = released[:emailColumnSize]
	}
	return released
}
