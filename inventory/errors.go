/*
errors.go - Centralized error types for catalog and stock operations

PURPOSE:
  All inventory error kinds in one place. Sentinels support
  errors.Is(); structured errors carry the offending SKU and amounts
  and unwrap to their sentinel.

SEE ALSO:
  - sales/errors.go: cart and checkout error kinds
  - tabular/errors.go: store-level failures
*/
package inventory

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDuplicateKey is returned when adding a product whose SKU
	// already exists in the catalog.
	ErrDuplicateKey = errors.New("duplicate SKU")

	// ErrNotFound is returned when a SKU is absent from the catalog.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidQuantity is returned when a requested quantity is not
	// a positive integer.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInsufficientStock is returned when an adjustment or sale would
	// drive a product's quantity negative. The operation is rejected in
	// full, never clamped.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrOutOfStock is returned when a product with zero on-hand
	// quantity is added to a cart.
	ErrOutOfStock = errors.New("product out of stock")

	// ErrInvalidProduct is returned when a product record violates a
	// field invariant (empty SKU, negative price, ...).
	ErrInvalidProduct = errors.New("invalid product")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// NotFoundError names the SKU that was looked up.
type NotFoundError struct {
	SKU string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.SKU)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateKeyError names the SKU that already exists.
type DuplicateKeyError struct {
	SKU string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("product %q already exists", e.SKU)
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

// InsufficientStockError details a rejected stock movement.
type InsufficientStockError struct {
	SKU       string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.SKU, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidProductError names the field that failed validation.
type InvalidProductError struct {
	Field  string
	Reason string
}

func (e *InvalidProductError) Error() string {
	return fmt.Sprintf("invalid product: %s %s", e.Field, e.Reason)
}

func (e *InvalidProductError) Unwrap() error { return ErrInvalidProduct }
