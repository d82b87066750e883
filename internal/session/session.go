// Package session holds the stored credential for the logged-in seller. The
// login flow (out of scope here) writes the session file; this package only
// reads it and exposes the token for authenticated API calls.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrNotLoggedIn means no usable credential exists; the embedding
	// application should send the user to the login screen.
	ErrNotLoggedIn = errors.New("no active session, log in first")
)

// User is the seller the sales are recorded under.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Session is the stored credential plus the user it belongs to.
type Session struct {
	BearerToken string `json:"token"`
	User        User   `json:"user"`
}

// Load reads the session file. A missing file or blank token reports
// ErrNotLoggedIn.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if strings.TrimSpace(s.BearerToken) == "" {
		return nil, ErrNotLoggedIn
	}
	return &s, nil
}

// Token implements the API client's token source.
func (s *Session) Token() (string, error) {
	if s == nil || strings.TrimSpace(s.BearerToken) == "" {
		return "", ErrNotLoggedIn
	}
	return s.BearerToken, nil
}
