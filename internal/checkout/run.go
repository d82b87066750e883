package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcomartinez12/playzone/internal/api"
	"github.com/marcomartinez12/playzone/internal/domain"
	"github.com/marcomartinez12/playzone/internal/events"
	"github.com/marcomartinez12/playzone/pkg/money"
)

// Run executes one checkout attempt end to end. The returned error reports
// refusals and broken collaborators (empty cart, attempt already in flight,
// prompter I/O); business outcomes, including a failed submission, come back
// in the Result with a user-facing message.
func (s *ServiceImpl) Run(ctx context.Context) (*Result, error) {
	snapshot := s.cart.Snapshot()
	if snapshot.IsEmpty() {
		return nil, ErrEmptyCart
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.reset()

	form, err := s.collectClient(ctx)
	if err != nil {
		return nil, err
	}
	if form == nil {
		s.log.Info("checkout cancelled at client form")
		return &Result{Status: domain.CheckoutStatusIdle, Message: "checkout cancelled"}, nil
	}

	if err := s.transition(domain.CheckoutStatusConfirmingClient); err != nil {
		return nil, err
	}

	// The upsert runs before the final confirmation so the dialog shows
	// server-echoed client data. Declining later does not undo it.
	upsert, err := s.directory.UpsertClient(ctx, api.ClientUpsert{
		Document: form.Document,
		Name:     form.Name,
		Phone:    form.Phone,
		Email:    form.Email,
	})
	if err != nil {
		s.fail("client upsert failed", err)
		return &Result{
			Status:  domain.CheckoutStatusFailed,
			Message: "Could not save the client: " + api.UserMessage(err),
		}, nil
	}

	client := upsert.Client
	if client.Name == "" {
		// thin server echo, keep the locally entered data
		client.Document, client.Name, client.Phone, client.Email = form.Document, form.Name, form.Phone, form.Email
	}

	if err := s.transition(domain.CheckoutStatusConfirmingSale); err != nil {
		return nil, err
	}

	confirmed, err := s.prompter.ConfirmSale(ctx, ConfirmSummary{
		ClientName:     client.Name,
		Document:       client.Document,
		Email:          client.Email,
		TotalFormatted: money.Format(snapshot.Total),
		LineCount:      len(snapshot.Lines),
	})
	if err != nil {
		return nil, err
	}
	if !confirmed {
		s.log.Info("sale declined at confirmation",
			zap.Int64("client_id", client.ID),
			zap.Bool("client_created", upsert.Created))
		return &Result{
			Status:          domain.CheckoutStatusIdle,
			Client:          &client,
			ClientPersisted: true,
			ClientCreated:   upsert.Created,
			Message:         "sale not confirmed",
		}, nil
	}

	if err := s.transition(domain.CheckoutStatusSubmitting); err != nil {
		return nil, err
	}
	return s.submit(ctx, snapshot, client, upsert.Created)
}

func (s *ServiceImpl) submit(ctx context.Context, snapshot domain.CartSnapshot, client domain.Client, clientCreated bool) (*Result, error) {
	request := domain.SaleRequest{
		UserID:         s.userID,
		ClientID:       client.ID,
		Total:          snapshot.Total,
		IdempotencyKey: uuid.NewString(),
		Lines:          saleLines(snapshot.Lines),
	}

	sale, err := s.sales.CreateSale(ctx, request)
	if err != nil {
		// the cart keeps its lines so the user can retry
		s.fail("sale submission failed", err)
		return &Result{
			Status:          domain.CheckoutStatusFailed,
			Client:          &client,
			ClientPersisted: true,
			ClientCreated:   clientCreated,
			Message:         "Could not record the sale: " + api.UserMessage(err),
		}, nil
	}

	s.cart.Clear()
	if err := s.transition(domain.CheckoutStatusCompleted); err != nil {
		return nil, err
	}

	s.bus.Emit(events.EventSaleCreated, sale)
	if clientCreated {
		s.bus.Emit(events.EventClientCreated, &client)
	} else {
		s.bus.Emit(events.EventClientUpdated, &client)
	}

	s.log.Info("sale recorded",
		zap.Int64("sale_id", sale.ID),
		zap.String("code", sale.Code),
		zap.String("total", sale.Total.String()))

	return &Result{
		Status:          domain.CheckoutStatusCompleted,
		Sale:            sale,
		Client:          &client,
		ClientPersisted: true,
		ClientCreated:   clientCreated,
		Message: fmt.Sprintf("Sale recorded for %s - %d product(s)",
			money.FormatWithDecimals(snapshot.Total), len(snapshot.Lines)),
	}, nil
}

func saleLines(lines []domain.CartLine) []domain.SaleLine {
	out := make([]domain.SaleLine, len(lines))
	for i, line := range lines {
		out[i] = domain.SaleLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}
	return out
}

func (s *ServiceImpl) fail(msg string, err error) {
	if terr := s.transition(domain.CheckoutStatusFailed); terr != nil {
		s.log.Error("could not mark checkout failed", zap.Error(terr))
	}
	s.log.Error(msg, zap.Error(err))
}
