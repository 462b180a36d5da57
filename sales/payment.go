// payment.go - the closed set of accepted payment methods.

package sales

import "strings"

// PaymentType is how a sale was paid. Only the three enumerated values
// are accepted; anything else is rejected at checkout.
type PaymentType string

const (
	PaymentCash  PaymentType = "Cash"
	PaymentCard  PaymentType = "Card"
	PaymentCheck PaymentType = "Check"
)

// Valid reports whether p is one of the enumerated payment types.
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentCheck:
		return true
	}
	return false
}

// ParsePaymentType parses user input into a canonical PaymentType,
// ignoring case. Returns InvalidPaymentError for anything else.
func ParsePaymentType(s string) (PaymentType, error) {
	for _, p := range []PaymentType{PaymentCash, PaymentCard, PaymentCheck} {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}
	return "", &InvalidPaymentError{Value: s}
}
