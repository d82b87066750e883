package api

import "github.com/marcomartinez12/playzone/internal/domain"

// ClientUpsert is the payload for the create-or-update client call, keyed by
// document number on the server side.
type ClientUpsert struct {
	Document string `json:"document"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

// ClientUpsertResult reports what the server did with the upsert. Created
// distinguishes a brand new client from an updated or already existing one,
// derived from the server's message field.
type ClientUpsertResult struct {
	Client  domain.Client
	Created bool
	Message string
}

// Wire envelopes, matching the backend's success/message/data shape.

type searchClientResponse struct {
	Found   bool           `json:"found"`
	Message string         `json:"message,omitempty"`
	Client  *domain.Client `json:"client,omitempty"`
}

type upsertClientResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message,omitempty"`
	ClientID int64          `json:"client_id,omitempty"`
	Data     *domain.Client `json:"data,omitempty"`
}

type createSaleResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    *domain.Sale `json:"data,omitempty"`
}

type listProductsResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    []domain.Product `json:"data"`
}
