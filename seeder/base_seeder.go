package seed

import (
	"errors"
	"fmt"

	"pos-kemasan/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func SeedMaterialCategories(db *gorm.DB) error {
	names := []string{"Kertas", "Tinta", "Plastik", "Finishing"}

	for _, name := range names {
		var existing models.MaterialCategory
		err := db.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.MaterialCategory{Name: name}).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", name, err)
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// SeedMaterials registers the common materials with zero stock. Stock only
// ever enters through logged restocks.
func SeedMaterials(db *gorm.DB) error {
	materials := []struct {
		Name      string
		Unit      string
		Category  string
		Threshold int64
	}{
		{"Kertas Art Carton 310gsm", "lembar", "Kertas", 100},
		{"Kertas Kraft 250gsm", "lembar", "Kertas", 100},
		{"Tinta CMYK", "liter", "Tinta", 2},
		{"Plastik Standing Pouch", "pcs", "Plastik", 200},
		{"Laminasi Doff", "roll", "Finishing", 1},
	}

	for _, m := range materials {
		var existing models.Material
		err := db.Where("name = ?", m.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var category models.MaterialCategory
		if err := db.Where("name = ?", m.Category).First(&category).Error; err != nil {
			return fmt.Errorf("seed material %s: category %s: %w", m.Name, m.Category, err)
		}

		material := models.Material{
			Name:              m.Name,
			Unit:              m.Unit,
			CategoryID:        &category.ID,
			Stock:             decimal.Zero,
			LowStockThreshold: decimal.NewFromInt(m.Threshold),
		}
		if err := db.Create(&material).Error; err != nil {
			return fmt.Errorf("seed material %s: %w", m.Name, err)
		}
	}
	return nil
}
