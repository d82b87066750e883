package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLine is one product within a sale request, with the unit price the
// buyer saw in the cart.
type SaleLine struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SaleRequest is submitted once per checkout. The idempotency key is fresh
// per attempt so a retried submission cannot double-book the sale.
type SaleRequest struct {
	UserID         int64           `json:"user_id"`
	ClientID       int64           `json:"client_id"`
	Total          decimal.Decimal `json:"total"`
	IdempotencyKey string          `json:"idempotency_key"`
	Lines          []SaleLine      `json:"products"`
}

// Sale is the server echo of a persisted sale.
type Sale struct {
	ID        int64           `json:"sale_id"`
	Code      string          `json:"code"`
	ClientID  int64           `json:"client_id"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}
