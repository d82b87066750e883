package checkout

import (
	"context"

	"go.uber.org/zap"

	"github.com/marcomartinez12/playzone/internal/domain"
)

// collectClient shows the client form until the user submits complete data
// or cancels. A nil form with nil error means the user backed out.
func (s *ServiceImpl) collectClient(ctx context.Context) (*ClientForm, error) {
	assist := FormAssist{Lookup: s.lookupAssist()}

	for {
		form, err := s.prompter.ClientForm(ctx, assist)
		if err != nil {
			return nil, err
		}
		if form == nil {
			return nil, nil
		}

		form.normalize()
		if err := form.validate(); err != nil {
			// no network call happens for incomplete data, the form
			// just comes back with what the user already typed
			assist.Previous = form
			assist.Warning = err.Error()
			continue
		}
		return form, nil
	}
}

// lookupAssist wraps the directory search for the form's lookup button.
// Lookup failures are best effort: the form stays blank and the user types
// the data in manually.
func (s *ServiceImpl) lookupAssist() LookupFunc {
	return func(ctx context.Context, document string) (*domain.Client, bool) {
		client, found, err := s.directory.SearchClient(ctx, document)
		if err != nil {
			s.log.Warn("client lookup failed",
				zap.String("document", document),
				zap.Error(err))
			return nil, false
		}
		return client, found
	}
}
