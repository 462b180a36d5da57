// errors.go - checkout error kinds. Stock-related kinds live in the
// inventory package; cart operations surface those unchanged.

package sales

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when checking out a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidPayment is returned for a payment type outside the
	// enumerated set (Cash, Card, Check).
	ErrInvalidPayment = errors.New("invalid payment type")
)

// InvalidPaymentError names the rejected payment value.
type InvalidPaymentError struct {
	Value string
}

func (e *InvalidPaymentError) Error() string {
	return fmt.Sprintf("invalid payment type %q (want Cash, Card or Check)", e.Value)
}

func (e *InvalidPaymentError) Unwrap() error { return ErrInvalidPayment }
