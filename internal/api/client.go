// Package api is the REST client for the playzone backend: client lookup
// and upsert, sale submission, product listing. Every call carries the
// stored bearer token and a request id, and goes through a circuit breaker
// so a flapping backend degrades to fast failures instead of hung prompts.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/marcomartinez12/playzone/internal/domain"
)

// TokenSource supplies the bearer token attached to every call.
type TokenSource interface {
	Token() (string, error)
}

// Config carries the options needed to build a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource
}

// Client is a resty-backed implementation of the backend contracts.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[*resty.Response]
	lookups singleflight.Group // collapses concurrent lookups for the same document
}

// NewClient builds an API client from the provided configuration values.
func NewClient(cfg Config) *Client {
	httpClient := resty.New()
	httpClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	httpClient.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		token, err := cfg.Tokens.Token()
		if err != nil {
			return err
		}
		r.SetAuthToken(token)
		r.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:    "playzone-api",
		Timeout: 30 * time.Second,
	})

	return &Client{http: httpClient, breaker: breaker}
}

// SearchClient resolves a client by document number. A client that does not
// exist is (nil, false, nil), not an error.
func (c *Client) SearchClient(ctx context.Context, document string) (*domain.Client, bool, error) {
	v, err, _ := c.lookups.Do(document, func() (interface{}, error) {
		resp, err := c.execute(func() (*resty.Response, error) {
			return c.http.R().SetContext(ctx).Get("/clients/search/" + document)
		})
		if err != nil {
			return nil, err
		}

		if resp.StatusCode() == http.StatusNotFound {
			return (*domain.Client)(nil), nil
		}

		var out searchClientResponse
		if err := decodeEnvelope(resp, &out); err != nil {
			return nil, err
		}
		if !out.Found {
			return (*domain.Client)(nil), nil
		}
		return out.Client, nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("search client %s: %w", document, err)
	}

	client := v.(*domain.Client)
	return client, client != nil, nil
}

// UpsertClient creates or updates a client record keyed by its document.
func (c *Client) UpsertClient(ctx context.Context, req ClientUpsert) (*ClientUpsertResult, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetBody(req).Post("/clients")
	})
	if err != nil {
		return nil, fmt.Errorf("upsert client: %w", err)
	}

	var out upsertClientResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: out.Message}
	}

	result := &ClientUpsertResult{
		Created: strings.Contains(strings.ToLower(out.Message), "created"),
		Message: out.Message,
	}
	if out.Data != nil {
		result.Client = *out.Data
	}
	if result.Client.ID == 0 {
		result.Client.ID = out.ClientID
	}
	return result, nil
}

// CreateSale persists a sale. A success:false envelope surfaces as an
// APIError carrying the server message verbatim.
func (c *Client) CreateSale(ctx context.Context, req domain.SaleRequest) (*domain.Sale, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).SetBody(req).Post("/sales")
	})
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	var out createSaleResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Data == nil {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: out.Message}
	}
	return out.Data, nil
}

// ListProducts fetches the sellable catalog with current stock levels.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	resp, err := c.execute(func() (*resty.Response, error) {
		return c.http.R().SetContext(ctx).Get("/products")
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	var out listProductsResponse
	if err := decodeEnvelope(resp, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: out.Message}
	}
	return out.Data, nil
}

func (c *Client) execute(call func() (*resty.Response, error)) (*resty.Response, error) {
	resp, err := c.breaker.Execute(call)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, ErrSessionExpired
	}
	return resp, nil
}

func decodeEnvelope(resp *resty.Response, out interface{}) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		if !resp.IsSuccess() {
			return &APIError{StatusCode: resp.StatusCode()}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
