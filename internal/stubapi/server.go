// Package stubapi is a local development stand-in for the Play Zone
// backend. It serves the same surface the engine consumes (products, client
// search/upsert, sales) from in-memory state so the terminal can be
// exercised without the real API. Not a production backend.
package stubapi

import (
	"fmt"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marcomartinez12/playzone/internal/domain"
)

type Server struct {
	token string

	mu           sync.Mutex
	products     map[int64]*domain.Product
	productOrder []int64
	clients      map[string]*domain.Client // by document
	nextClientID int64
	sales        map[string]*domain.Sale // by idempotency key
	nextSaleID   int64
}

// NewServer builds a stub expecting the given bearer token, seeded with a
// small demo catalog.
func NewServer(token string) *Server {
	s := &Server{
		token:    token,
		products: make(map[int64]*domain.Product),
		clients:  make(map[string]*domain.Client),
		sales:    make(map[string]*domain.Sale),
	}

	seed := []domain.Product{
		{ID: 1, Name: "PlayStation 5", Category: "consoles", Price: decimal.NewFromInt(2800000), Stock: 4},
		{ID: 2, Name: "DualSense Controller", Category: "accessories", Price: decimal.NewFromInt(350000), Stock: 12},
		{ID: 3, Name: "FC 26", Category: "games", Price: decimal.NewFromInt(280000), Stock: 9},
		{ID: 4, Name: "HDMI 2.1 Cable", Category: "accessories", Price: decimal.NewFromInt(45000), Stock: 30},
	}
	for i := range seed {
		s.products[seed[i].ID] = &seed[i]
		s.productOrder = append(s.productOrder, seed[i].ID)
	}
	return s
}

// Router mounts the API under /api with bearer auth.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Get("/products", s.listProducts)
		r.Get("/clients/search/{document}", s.searchClient)
		r.Post("/clients", s.upsertClient)
		r.Post("/sales", s.createSale)
	})
	return r
}

func (s *Server) listProductsLocked() []domain.Product {
	out := make([]domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, *s.products[id])
	}
	return out
}

func (s *Server) saleCode(id int64) string {
	return fmt.Sprintf("SALE-%05d", id)
}
