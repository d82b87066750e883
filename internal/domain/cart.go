package domain

import "github.com/shopspring/decimal"

// CartLine is one product entry in the cart. MaxStock is the stock ceiling
// observed when the line was added (or last refreshed); Quantity never
// exceeds it.
type CartLine struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	MaxStock  int
}

// Subtotal returns UnitPrice * Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSnapshot is a read-only copy of the cart state at one point in time.
// Total and TotalItems are recomputed from the lines on every snapshot.
type CartSnapshot struct {
	Lines      []CartLine
	Total      decimal.Decimal
	TotalItems int
}

func (s CartSnapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
