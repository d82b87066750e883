package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry as served by the inventory API. Stock is the
// quantity available at fetch time and becomes the stock ceiling when the
// product is added to the cart.
type Product struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
}
