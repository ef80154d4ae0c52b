package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts are sent as JSON numbers, which is what the dashboard expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// All returns every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&MaterialCategory{},
		&Material{},
		&Order{},
		&OrderItem{},
		&OrderStatusHistory{},
		&MaterialLog{},
		&FinancialLog{},
	}
}
