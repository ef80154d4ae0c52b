package models

import (
	"pos-kemasan/types"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaterialCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Material struct {
	ID                uint              `json:"id" gorm:"primaryKey"`
	Name              string            `json:"name" gorm:"size:255;not null;uniqueIndex"`
	Unit              string            `json:"unit" gorm:"size:50;not null"`
	CategoryID        *uint             `json:"category_id" gorm:"index"`
	Category          *MaterialCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Stock             decimal.Decimal   `json:"stock" gorm:"type:decimal(15,2);not null"`
	LowStockThreshold decimal.Decimal   `json:"low_stock_threshold" gorm:"type:decimal(15,2);not null"`
	IsLowStock        bool              `json:"is_low_stock" gorm:"-"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

func (m *Material) AfterFind(tx *gorm.DB) (err error) {
	m.IsLowStock = m.Stock.LessThanOrEqual(m.LowStockThreshold)
	return
}

// MaterialLog is one signed stock movement. Rows are never updated or
// deleted; a material's stock equals the sum of its quantity changes.
type MaterialLog struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	BatchID        types.SnowflakeID `json:"batch_id" gorm:"not null;index"`
	MaterialID     uint              `json:"material_id" gorm:"not null;index"`
	MaterialName   string            `json:"material_name,omitempty" gorm:"->;-:migration"`
	OrderID        *uint             `json:"order_id" gorm:"index"`
	UserID         uint              `json:"user_id" gorm:"not null"`
	UserName       string            `json:"user_name,omitempty" gorm:"->;-:migration"`
	QuantityChange decimal.Decimal   `json:"quantity_change" gorm:"type:decimal(15,2);not null"`
	Notes          string            `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time         `json:"created_at" gorm:"index"`
}
