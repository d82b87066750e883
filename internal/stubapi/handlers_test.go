package stubapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer dev-token")

	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRequireBearer(t *testing.T) {
	server := NewServer("dev-token")

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListProducts(t *testing.T) {
	server := NewServer("dev-token")

	rec := doRequest(t, server, http.MethodGet, "/api/products", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Len(t, out["data"], 4)
}

func TestUpsertClient_CreateThenUpdate(t *testing.T) {
	server := NewServer("dev-token")
	payload := map[string]string{"document": "1017", "name": "Juan Perez", "phone": "3001234567"}

	rec := doRequest(t, server, http.MethodPost, "/api/clients", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, "client created", out["message"])

	payload["name"] = "Juan P. Perez"
	rec = doRequest(t, server, http.MethodPost, "/api/clients", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	out = decode(t, rec)
	assert.Equal(t, "client updated", out["message"])

	rec = doRequest(t, server, http.MethodGet, "/api/clients/search/1017", nil)
	out = decode(t, rec)
	assert.Equal(t, true, out["found"])
	client := out["client"].(map[string]any)
	assert.Equal(t, "Juan P. Perez", client["name"])
}

func TestUpsertClient_MissingFields(t *testing.T) {
	server := NewServer("dev-token")

	rec := doRequest(t, server, http.MethodPost, "/api/clients", map[string]string{"document": "1017"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, false, out["success"])
}

func TestSearchClient_NotFound(t *testing.T) {
	server := NewServer("dev-token")

	rec := doRequest(t, server, http.MethodGet, "/api/clients/search/404", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, false, out["found"])
}

func TestCreateSale_DecrementsStock(t *testing.T) {
	server := NewServer("dev-token")
	sale := map[string]any{
		"user_id": 7, "client_id": 21, "total": "560000", "idempotency_key": "k1",
		"products": []map[string]any{{"product_id": 3, "quantity": 2, "unit_price": "280000"}},
	}

	rec := doRequest(t, server, http.MethodPost, "/api/sales", sale)
	require.Equal(t, http.StatusCreated, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, true, out["success"])
	data := out["data"].(map[string]any)
	assert.Equal(t, "SALE-00001", data["code"])

	rec = doRequest(t, server, http.MethodGet, "/api/products", nil)
	products := decode(t, rec)["data"].([]any)
	for _, raw := range products {
		p := raw.(map[string]any)
		if p["id"].(float64) == 3 {
			assert.Equal(t, float64(7), p["stock"], "stock reduced by the sold quantity")
		}
	}
}

func TestCreateSale_IdempotentReplay(t *testing.T) {
	server := NewServer("dev-token")
	sale := map[string]any{
		"user_id": 7, "client_id": 21, "total": "280000", "idempotency_key": "k1",
		"products": []map[string]any{{"product_id": 3, "quantity": 1, "unit_price": "280000"}},
	}

	first := decode(t, doRequest(t, server, http.MethodPost, "/api/sales", sale))
	replay := decode(t, doRequest(t, server, http.MethodPost, "/api/sales", sale))

	assert.Equal(t, first["data"].(map[string]any)["code"], replay["data"].(map[string]any)["code"])
	assert.Equal(t, "sale already recorded", replay["message"])

	rec := doRequest(t, server, http.MethodGet, "/api/products", nil)
	products := decode(t, rec)["data"].([]any)
	for _, raw := range products {
		p := raw.(map[string]any)
		if p["id"].(float64) == 3 {
			assert.Equal(t, float64(8), p["stock"], "replay does not decrement twice")
		}
	}
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	server := NewServer("dev-token")
	sale := map[string]any{
		"user_id": 7, "client_id": 21, "total": "0", "idempotency_key": "k9",
		"products": []map[string]any{{"product_id": 1, "quantity": 99, "unit_price": "2800000"}},
	}

	out := decode(t, doRequest(t, server, http.MethodPost, "/api/sales", sale))

	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["message"], "insufficient stock")
}
