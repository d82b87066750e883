package domain

// Client is a buyer identified by a document number (national id or tax id).
// Email may be empty.
type Client struct {
	ID       int64  `json:"id"`
	Document string `json:"document"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}
