package database

import (
	"errors"
	"fmt"
	"log/slog"

	"pos-kemasan/config"
	"pos-kemasan/models"
	seed "pos-kemasan/seeder"
	"pos-kemasan/utils"

	"gorm.io/gorm"
)

// RunSeeders inserts the reference data a fresh install needs. Existing rows
// are left alone, so it is safe to run on every start.
func RunSeeders(db *gorm.DB, cfg *config.Config) error {
	if err := SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	if err := seed.SeedMaterialCategories(db); err != nil {
		return err
	}
	return seed.SeedMaterials(db)
}

func SeedAdmin(db *gorm.DB, email, password string) error {
	email = utils.NormalizeEmail(email)

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := models.User{Name: "Administrator", Email: email, Password: hash, Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	slog.Info("seeded admin user", "email", email)
	return nil
}
