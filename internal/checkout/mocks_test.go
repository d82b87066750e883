package checkout

import (
	"context"

	"github.com/marcomartinez12/playzone/internal/api"
	"github.com/marcomartinez12/playzone/internal/domain"
)

// mockDirectory implements Directory for testing
type mockDirectory struct {
	searchClient *domain.Client
	searchErr    error
	searchCalls  int

	upsertResult *api.ClientUpsertResult
	upsertErr    error
	upsertCalls  int
	lastUpsert   api.ClientUpsert
}

func (m *mockDirectory) SearchClient(_ context.Context, _ string) (*domain.Client, bool, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, false, m.searchErr
	}
	return m.searchClient, m.searchClient != nil, nil
}

func (m *mockDirectory) UpsertClient(_ context.Context, req api.ClientUpsert) (*api.ClientUpsertResult, error) {
	m.upsertCalls++
	m.lastUpsert = req
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	return m.upsertResult, nil
}

// mockSales implements Sales for testing
type mockSales struct {
	sale        *domain.Sale
	err         error
	calls       int
	lastRequest domain.SaleRequest
}

func (m *mockSales) CreateSale(_ context.Context, req domain.SaleRequest) (*domain.Sale, error) {
	m.calls++
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return m.sale, nil
}

// scriptedPrompter implements Prompter, returning the queued forms in order
// and a fixed confirmation answer. A non-nil block channel stalls the first
// ClientForm call until the channel is closed, for re-entrancy tests.
type scriptedPrompter struct {
	forms      []*ClientForm
	formCalls  int
	assists    []FormAssist
	confirm    bool
	confirmErr error
	block      chan struct{}
}

func (p *scriptedPrompter) ClientForm(_ context.Context, assist FormAssist) (*ClientForm, error) {
	if p.block != nil {
		<-p.block
	}
	p.assists = append(p.assists, assist)
	var form *ClientForm
	if p.formCalls < len(p.forms) {
		form = p.forms[p.formCalls]
	}
	p.formCalls++
	return form, nil
}

func (p *scriptedPrompter) ConfirmSale(_ context.Context, _ ConfirmSummary) (bool, error) {
	return p.confirm, p.confirmErr
}
