package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcomartinez12/playzone/internal/domain"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Tokens:  staticToken("test-token"),
	})
}

func TestClient_AttachesAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewEncoder(w).Encode(map[string]any{"found": false})
	}))

	_, _, err := client.SearchClient(context.Background(), "1017")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_SearchClient_Found(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clients/search/1017", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"found":  true,
			"client": map[string]any{"id": 21, "document": "1017", "name": "Juan Perez", "phone": "3001234567"},
		})
	}))

	found, ok, err := client.SearchClient(context.Background(), "1017")

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(21), found.ID)
	assert.Equal(t, "Juan Perez", found.Name)
}

func TestClient_SearchClient_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"found": false, "message": "client not found"})
	}))

	found, ok, err := client.SearchClient(context.Background(), "9999")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, found)
}

func TestClient_UpsertClient_CreatedVsUpdated(t *testing.T) {
	message := "client created"
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ClientUpsert
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"message":   message,
			"client_id": 21,
			"data":      map[string]any{"id": 21, "document": req.Document, "name": req.Name, "phone": req.Phone},
		})
	}))

	result, err := client.UpsertClient(context.Background(), ClientUpsert{Document: "1017", Name: "Juan Perez", Phone: "3001234567"})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, int64(21), result.Client.ID)

	message = "client updated"
	result, err = client.UpsertClient(context.Background(), ClientUpsert{Document: "1017", Name: "Juan P.", Phone: "3001234567"})
	require.NoError(t, err)
	assert.False(t, result.Created)
	assert.Equal(t, "client updated", result.Message)
}

func TestClient_UpsertClient_FailureCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "document is required"})
	}))

	_, err := client.UpsertClient(context.Background(), ClientUpsert{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "document is required", apiErr.Message)
	assert.Equal(t, "document is required", UserMessage(err))
}

func TestClient_CreateSale_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.SaleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.IdempotencyKey)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"sale_id": 5, "code": "SALE-00005", "client_id": req.ClientID, "total": req.Total},
		})
	}))

	sale, err := client.CreateSale(context.Background(), domain.SaleRequest{
		UserID:         7,
		ClientID:       21,
		Total:          decimal.NewFromInt(30),
		IdempotencyKey: "key-1",
		Lines:          []domain.SaleLine{{ProductID: 1, Quantity: 3, UnitPrice: decimal.NewFromInt(10)}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), sale.ID)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(30)))
}

func TestClient_CreateSale_BusinessFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "insufficient stock for Game"})
	}))

	_, err := client.CreateSale(context.Background(), domain.SaleRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "insufficient stock for Game", apiErr.Message)
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, _, err := client.SearchClient(context.Background(), "1017")
	assert.ErrorIs(t, err, ErrSessionExpired)

	_, err = client.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestClient_ListProducts(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"id": 1, "name": "PlayStation 5", "price": "2800000", "stock": 4},
			},
		})
	}))

	products, err := client.ListProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "PlayStation 5", products[0].Name)
	assert.Equal(t, 4, products[0].Stock)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(2800000)))
}

func TestUserMessage_FallsBackForTransportErrors(t *testing.T) {
	assert.Equal(t, connectivityMessage, UserMessage(context.DeadlineExceeded))
	assert.Equal(t, connectivityMessage, UserMessage(&APIError{StatusCode: 500}))
	assert.Equal(t, "boom", UserMessage(&APIError{StatusCode: 500, Message: "boom"}))
}
