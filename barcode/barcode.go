// Package barcode checks that SKUs can be rendered as Code 128
// barcodes. Rendering itself is the label printer's concern; the
// engine's only contract is that every SKU it hands over is encodable.
package barcode

import (
	"errors"
	"fmt"
)

// ErrNotEncodable is returned for a SKU Code 128 cannot represent.
var ErrNotEncodable = errors.New("SKU not encodable as Code 128")

// NotEncodableError names the SKU and the reason it was rejected.
type NotEncodableError struct {
	SKU    string
	Reason string
}

func (e *NotEncodableError) Error() string {
	return fmt.Sprintf("SKU %q: %s", e.SKU, e.Reason)
}

func (e *NotEncodableError) Unwrap() error { return ErrNotEncodable }

// ValidateSKU reports whether sku is encodable as a Code 128 barcode:
// non-empty, ASCII only (code points 0-127).
func ValidateSKU(sku string) error {
	if sku == "" {
		return &NotEncodableError{SKU: sku, Reason: "must not be empty"}
	}
	for i := 0; i < len(sku); i++ {
		if sku[i] > 127 {
			return &NotEncodableError{
				SKU:    sku,
				Reason: fmt.Sprintf("byte %d is outside the Code 128 character set", i),
			}
		}
	}
	return nil
}
