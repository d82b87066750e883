package stubapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marcomartinez12/playzone/internal/domain"
)

type envelope struct {
	Success  bool        `json:"success"`
	Found    *bool       `json:"found,omitempty"`
	Message  string      `json:"message,omitempty"`
	ClientID int64       `json:"client_id,omitempty"`
	Client   interface{} `json:"client,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+s.token {
			respondJSON(w, http.StatusUnauthorized, envelope{Success: false, Message: "invalid or expired token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GET /api/products
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	products := s.listProductsLocked()
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, envelope{Success: true, Data: products})
}

// GET /api/clients/search/{document}
func (s *Server) searchClient(w http.ResponseWriter, r *http.Request) {
	document := chi.URLParam(r, "document")

	s.mu.Lock()
	client, ok := s.clients[document]
	var echo *domain.Client
	if ok {
		c := *client
		echo = &c
	}
	s.mu.Unlock()

	found := ok
	if !found {
		respondJSON(w, http.StatusOK, envelope{Success: true, Found: &found, Message: "client not found"})
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Found: &found, Message: "client found", Client: echo})
}

type upsertClientRequest struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// POST /api/clients — create-or-update keyed by document. The message field
// tells the caller which one happened.
func (s *Server) upsertClient(w http.ResponseWriter, r *http.Request) {
	var req upsertClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Document) == "" || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		respondJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "document, name and phone are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.clients[req.Document]; ok {
		existing.Name = req.Name
		existing.Phone = req.Phone
		if req.Email != "" {
			existing.Email = req.Email
		}
		echo := *existing
		respondJSON(w, http.StatusOK, envelope{Success: true, Message: "client updated", ClientID: echo.ID, Data: echo})
		return
	}

	s.nextClientID++
	client := &domain.Client{
		ID:       s.nextClientID,
		Document: req.Document,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
	}
	s.clients[req.Document] = client
	echo := *client
	respondJSON(w, http.StatusCreated, envelope{Success: true, Message: "client created", ClientID: echo.ID, Data: echo})
}

// POST /api/sales — validates stock, decrements it and echoes the sale.
// Replays of an idempotency key return the first result.
func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var req domain.SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "invalid JSON body"})
		return
	}
	if len(req.Lines) == 0 {
		respondJSON(w, http.StatusBadRequest, envelope{Success: false, Message: "a sale needs at least one product"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.IdempotencyKey != "" {
		if sale, ok := s.sales[req.IdempotencyKey]; ok {
			respondJSON(w, http.StatusOK, envelope{Success: true, Message: "sale already recorded", Data: *sale})
			return
		}
	}

	for _, line := range req.Lines {
		product, ok := s.products[line.ProductID]
		if !ok {
			respondJSON(w, http.StatusOK, envelope{Success: false, Message: "product not found"})
			return
		}
		if product.Stock < line.Quantity {
			respondJSON(w, http.StatusOK, envelope{Success: false, Message: "insufficient stock for " + product.Name})
			return
		}
	}
	for _, line := range req.Lines {
		s.products[line.ProductID].Stock -= line.Quantity
	}

	s.nextSaleID++
	sale := &domain.Sale{
		ID:        s.nextSaleID,
		Code:      s.saleCode(s.nextSaleID),
		ClientID:  req.ClientID,
		Total:     req.Total,
		CreatedAt: time.Now().UTC(),
	}
	if req.IdempotencyKey != "" {
		s.sales[req.IdempotencyKey] = sale
	}

	respondJSON(w, http.StatusCreated, envelope{Success: true, Message: "sale recorded successfully", Data: *sale})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
