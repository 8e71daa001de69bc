package domain

import "github.com/shopspring/decimal"

// Product is read-only catalog data referenced by order items.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
}
