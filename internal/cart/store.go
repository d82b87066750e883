package cart

import (
	"errors"
	"sync"

	"github.com/marcomartinez12/playzone/internal/domain"
	"github.com/shopspring/decimal"
)

// Common errors returned by the store
var (
	ErrStockExceeded = errors.New("no more units available in stock")
	ErrLineNotFound  = errors.New("product is not in the cart")
)

// Store owns the cart lines for one session. Lines are keyed by product id,
// at most one line per product, ordered by insertion. The store never hands
// out its internal slice; callers get defensive copies via Snapshot.
type Store struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// AddItem puts one unit of the product into the cart. If a line already
// exists its quantity grows by one, bounded by the available stock; the
// stock ceiling refreshes to the latest observed value. A new line is
// admitted only when availableStock is positive, regardless of what the
// caller already validated.
func (s *Store) AddItem(productID int64, name string, unitPrice decimal.Decimal, availableStock int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if s.lines[i].Quantity >= availableStock {
			return ErrStockExceeded
		}
		s.lines[i].Quantity++
		s.lines[i].MaxStock = availableStock
		return nil
	}

	if availableStock <= 0 {
		return ErrStockExceeded
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  1,
		MaxStock:  availableStock,
	})
	return nil
}

// UpdateQuantity applies a quantity delta to an existing line. A result of
// zero or less removes the line; a result above the stock ceiling is refused
// with ErrStockExceeded and the line keeps its quantity.
func (s *Store) UpdateQuantity(productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}

		newQuantity := s.lines[i].Quantity + delta
		switch {
		case newQuantity <= 0:
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		case newQuantity <= s.lines[i].MaxStock:
			s.lines[i].Quantity = newQuantity
		default:
			return ErrStockExceeded
		}
		return nil
	}

	return ErrLineNotFound
}

// Clear empties the cart atomically. Asking the user first is the caller's
// job; the store only guarantees no partial clear is ever observable.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Snapshot returns a copy of the lines with total and item count recomputed.
func (s *Store) Snapshot() domain.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := domain.CartSnapshot{
		Lines: make([]domain.CartLine, len(s.lines)),
		Total: decimal.Zero,
	}
	copy(snapshot.Lines, s.lines)

	for _, line := range s.lines {
		snapshot.Total = snapshot.Total.Add(line.Subtotal())
		snapshot.TotalItems += line.Quantity
	}
	return snapshot
}

// Len returns the number of lines (not units) in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}
