// Package checkout drives the sale submission workflow: collect the client,
// upsert it, confirm, submit the sale, then clear the cart and notify the
// rest of the UI. One linear state machine per attempt, at most one attempt
// in flight.
package checkout

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/marcomartinez12/playzone/internal/api"
	"github.com/marcomartinez12/playzone/internal/domain"
	"github.com/marcomartinez12/playzone/internal/events"
)

// CartStore is the read/consume view of the cart the workflow borrows for
// the duration of one checkout.
type CartStore interface {
	Snapshot() domain.CartSnapshot
	Clear()
}

// Directory resolves and persists clients.
type Directory interface {
	SearchClient(ctx context.Context, document string) (*domain.Client, bool, error)
	UpsertClient(ctx context.Context, req api.ClientUpsert) (*api.ClientUpsertResult, error)
}

// Sales persists sales.
type Sales interface {
	CreateSale(ctx context.Context, req domain.SaleRequest) (*domain.Sale, error)
}

// LookupFunc is handed to the prompter so the form can offer
// lookup-by-document; a failed lookup reports not found.
type LookupFunc func(ctx context.Context, document string) (*domain.Client, bool)

// ClientForm is what the user entered in the client step.
type ClientForm struct {
	Document string
	Name     string
	Phone    string
	Email    string
}

func (f *ClientForm) normalize() {
	f.Document = strings.TrimSpace(f.Document)
	f.Name = strings.TrimSpace(f.Name)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
}

func (f *ClientForm) validate() error {
	if f.Document == "" || f.Name == "" || f.Phone == "" {
		return ErrIncompleteClient
	}
	return nil
}

// FormAssist carries the helpers and context for one showing of the client
// form: the lookup action, the rejected previous attempt (so the form can
// keep what the user typed) and the warning explaining the rejection.
type FormAssist struct {
	Lookup   LookupFunc
	Previous *ClientForm
	Warning  string
}

// ConfirmSummary is the human-readable content of the final confirmation.
type ConfirmSummary struct {
	ClientName     string
	Document       string
	Email          string
	TotalFormatted string
	LineCount      int
}

// Prompter is the blocking UI the workflow suspends on. ClientForm returns
// nil when the user cancels. Both calls may return an error only for broken
// I/O, not for user decisions.
type Prompter interface {
	ClientForm(ctx context.Context, assist FormAssist) (*ClientForm, error)
	ConfirmSale(ctx context.Context, summary ConfirmSummary) (bool, error)
}

// Result is the outcome of one checkout attempt. Status is COMPLETED,
// FAILED, or IDLE when the user backed out. ClientPersisted reports that the
// upsert ran even if the sale never happened; that record is not rolled
// back.
type Result struct {
	Status          domain.CheckoutStatus
	Sale            *domain.Sale
	Client          *domain.Client
	ClientPersisted bool
	ClientCreated   bool
	Message         string
}

// Service runs checkout attempts.
type Service interface {
	Run(ctx context.Context) (*Result, error)
	Status() domain.CheckoutStatus
}

type ServiceImpl struct {
	cart      CartStore
	directory Directory
	sales     Sales
	prompter  Prompter
	bus       *events.Bus
	log       *zap.Logger
	userID    int64

	mu     sync.Mutex
	status domain.CheckoutStatus
}

func NewService(cart CartStore, directory Directory, sales Sales, prompter Prompter, bus *events.Bus, log *zap.Logger, userID int64) *ServiceImpl {
	return &ServiceImpl{
		cart:      cart,
		directory: directory,
		sales:     sales,
		prompter:  prompter,
		bus:       bus,
		log:       log,
		userID:    userID,
		status:    domain.CheckoutStatusIdle,
	}
}

// Status returns the current workflow state.
func (s *ServiceImpl) Status() domain.CheckoutStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// begin claims the workflow for one attempt; any state other than IDLE means
// another attempt is in flight and this one is refused.
func (s *ServiceImpl) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != domain.CheckoutStatusIdle {
		return ErrCheckoutInProgress
	}
	s.status = domain.CheckoutStatusCollectingClient
	return nil
}

func (s *ServiceImpl) transition(to domain.CheckoutStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !domain.CanTransitionTo(s.status, to) {
		return ErrIllegalTransition
	}
	s.status = to
	return nil
}

// reset releases the workflow back to IDLE once the attempt is over,
// whatever state it ended in.
func (s *ServiceImpl) reset() {
	s.mu.Lock()
	s.status = domain.CheckoutStatusIdle
	s.mu.Unlock()
}
