package domain

type CheckoutStatus string

const (
	CheckoutStatusIdle             CheckoutStatus = "IDLE"
	CheckoutStatusCollectingClient CheckoutStatus = "COLLECTING_CLIENT"
	CheckoutStatusConfirmingClient CheckoutStatus = "CONFIRMING_CLIENT"
	CheckoutStatusConfirmingSale   CheckoutStatus = "CONFIRMING_SALE"
	CheckoutStatusSubmitting       CheckoutStatus = "SUBMITTING"
	CheckoutStatusCompleted        CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed           CheckoutStatus = "FAILED"
)

// validCheckoutTransitions lists the allowed next statuses for each status.
// Cancelling a modal step goes back to IDLE; failures are terminal for the
// attempt but the workflow resets to IDLE so the user can retry.
var validCheckoutTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusIdle:             {CheckoutStatusCollectingClient},
	CheckoutStatusCollectingClient: {CheckoutStatusConfirmingClient, CheckoutStatusIdle},
	CheckoutStatusConfirmingClient: {CheckoutStatusConfirmingSale, CheckoutStatusFailed},
	CheckoutStatusConfirmingSale:   {CheckoutStatusSubmitting, CheckoutStatusIdle},
	CheckoutStatusSubmitting:       {CheckoutStatusCompleted, CheckoutStatusFailed},
	CheckoutStatusCompleted:        {CheckoutStatusIdle},
	CheckoutStatusFailed:           {CheckoutStatusIdle},
}

// CanTransitionTo reports whether a checkout may move from one status to
// another.
func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range validCheckoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
