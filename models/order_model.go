package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	CustomerName    string          `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhone   string          `json:"customer_phone" gorm:"size:50"`
	CustomerAddress string          `json:"customer_address" gorm:"type:text"`
	TotalPrice      decimal.Decimal `json:"total_price" gorm:"type:decimal(15,2);not null"`
	Status          OrderStatus     `json:"status" gorm:"size:50;not null;index"`
	CreatedBy       uint            `json:"created_by" gorm:"not null;index"`
	CreatedByName   string          `json:"created_by_name" gorm:"->;-:migration"`
	CreatedAt       time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	// HasDesign is true when every item already has a finished design.
	HasDesign bool `json:"has_design" gorm:"-"`
}

type OrderItem struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	OrderID            uint            `json:"order_id" gorm:"not null;index"`
	ProductName        string          `json:"product_name" gorm:"size:255;not null"`
	Size               string          `json:"size" gorm:"size:100"`
	Quantity           int             `json:"quantity" gorm:"not null"`
	PricePerItem       decimal.Decimal `json:"price_per_item" gorm:"type:decimal(15,2);not null"`
	ProjectProductName string          `json:"project_product_name" gorm:"size:255"`
	ProjectLabelName   string          `json:"project_label_name" gorm:"size:255"`
	HalalNo            string          `json:"halal_no" gorm:"size:100"`
	PirtNo             string          `json:"pirt_no" gorm:"size:100"`
	NibNo              string          `json:"nib_no" gorm:"size:100"`
	HasDesign          bool            `json:"has_design" gorm:"not null"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PricePerItem.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal sums quantity × price over items.
func ItemsTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// AllDesigned reports whether every item has a finished design. An order
// without items never qualifies.
func AllDesigned(items []OrderItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, it := range items {
		if !it.HasDesign {
			return false
		}
	}
	return true
}
