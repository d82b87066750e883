package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to check out")
	ErrCheckoutInProgress = errors.New("a checkout is already in progress")
	ErrIllegalTransition  = errors.New("illegal transition of checkout status")
	ErrIncompleteClient   = errors.New("name, document and phone are required")
)
