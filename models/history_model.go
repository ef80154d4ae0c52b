package models

import (
	"pos-kemasan/controllers/idgen"
	"pos-kemasan/types"
	"time"

	"gorm.io/gorm"
)

// OrderStatusHistory is the append-only audit trail of an order's workflow.
type OrderStatusHistory struct {
	ID            types.SnowflakeID `json:"id" gorm:"primaryKey;autoIncrement:false"`
	OrderID       uint              `json:"order_id" gorm:"not null;index"`
	FromStatus    OrderStatus       `json:"from_status" gorm:"size:50"`
	ToStatus      OrderStatus       `json:"to_status" gorm:"size:50;not null"`
	ChangedBy     uint              `json:"changed_by" gorm:"not null"`
	ChangedByName string            `json:"changed_by_name" gorm:"->;-:migration"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == 0 {
		h.ID = types.SnowflakeID(idgen.GenerateID())
	}
	return
}
