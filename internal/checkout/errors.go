package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned when checkout is invoked without an
	// authenticated user. The flow never reaches validation in that case.
	ErrAuthRequired = errors.New("authentication required")
	// ErrEmptyCart is returned when there is nothing to purchase.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError reports a single failed field constraint. It is local and
// recoverable: the cart is untouched and no order write was attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// SubmissionError wraps a failed order write. The cart is preserved and the
// user may resubmit the same form; retry is never automatic.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
