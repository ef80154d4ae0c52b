package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesSummary struct {
	TotalOrders  int64           `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	NewCustomers int64           `json:"newCustomers"`
	Period       Period          `json:"period"`
	Since        time.Time       `json:"since"`
}

type SalesPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type SalesDetailRow struct {
	OrderID            uint            `json:"order_id"`
	CreatedAt          time.Time       `json:"created_at"`
	CustomerName       string          `json:"customer_name"`
	Status             OrderStatus     `json:"status"`
	CashierName        string          `json:"cashier_name"`
	ProductName        string          `json:"product_name"`
	Size               string          `json:"size"`
	Quantity           int             `json:"quantity"`
	PricePerItem       decimal.Decimal `json:"price_per_item"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	ProjectProductName string          `json:"project_product_name"`
	ProjectLabelName   string          `json:"project_label_name"`
}

type FinancialTransaction struct {
	Date        time.Time       `json:"date"`
	Type        FinancialType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	UserName    string          `json:"user_name"`
}

type FinancialReport struct {
	Transactions []FinancialTransaction `json:"transactions"`
	TotalIncome  decimal.Decimal        `json:"total_income"`
	TotalExpense decimal.Decimal        `json:"total_expense"`
	Balance      decimal.Decimal        `json:"balance"`
}
