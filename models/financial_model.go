package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinancialType string

const (
	FinancialIncome  FinancialType = "pemasukan"
	FinancialExpense FinancialType = "pengeluaran"
)

func (t FinancialType) Valid() bool {
	return t == FinancialIncome || t == FinancialExpense
}

type FinancialLog struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Type        FinancialType   `json:"type" gorm:"size:20;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	UserName    string          `json:"user_name" gorm:"->;-:migration"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
}
