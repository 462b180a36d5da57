/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the HTTP surface, decoupled from the domain types so
  the wire contract can evolve independently of the engine.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

Currency fields are decimal and marshal as exact JSON numbers; dates
are RFC 3339 strings.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/godsarin/InventoryManagement/auth"
	"github.com/godsarin/InventoryManagement/inventory"
	"github.com/godsarin/InventoryManagement/sales"
)

// =============================================================================
// PRODUCTS
// =============================================================================

// ProductDTO represents one catalog entry in API responses.
type ProductDTO struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Quantity int64           `json:"quantity"`
	Supplier string          `json:"supplier"`
	MinStock int64           `json:"min_stock"`
	LowStock bool            `json:"low_stock"`
}

func toProductDTO(p inventory.Product) ProductDTO {
	return ProductDTO{
		SKU:      p.SKU,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Cost:     p.Cost,
		Quantity: p.Quantity,
		Supplier: p.Supplier,
		MinStock: p.MinStock,
		LowStock: p.IsLowStock(),
	}
}

func toProductDTOs(products []inventory.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	return dtos
}

// ProductRequest is the body for creating or updating a product.
// On update the SKU in the URL wins; a body SKU is ignored.
type ProductRequest struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Quantity int64           `json:"quantity"`
	Supplier string          `json:"supplier"`
	MinStock int64           `json:"min_stock"`
}

func (r ProductRequest) fields() inventory.Fields {
	return inventory.Fields{
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Cost:     r.Cost,
		Quantity: r.Quantity,
		Supplier: r.Supplier,
		MinStock: r.MinStock,
	}
}

// =============================================================================
// STOCK
// =============================================================================

// AdjustStockRequest is one signed stock movement.
type AdjustStockRequest struct {
	SKU    string `json:"sku"`
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// AdjustStockDTO reports the quantity after a movement.
type AdjustStockDTO struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// =============================================================================
// CART AND CHECKOUT
// =============================================================================

// CartLineDTO is one cart line with its computed total.
type CartLineDTO struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// CartDTO is the whole cart with its recomputed total.
type CartDTO struct {
	Lines []CartLineDTO   `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func toCartDTO(cart *sales.Cart) CartDTO {
	lines := cart.Lines()
	dto := CartDTO{Lines: make([]CartLineDTO, len(lines)), Total: cart.Total()}
	for i, l := range lines {
		dto.Lines[i] = CartLineDTO{
			SKU:      l.SKU,
			Name:     l.Name,
			Price:    l.Price,
			Quantity: l.Quantity,
			Total:    l.Total(),
		}
	}
	return dto
}

// AddCartLineRequest adds a product to the cart.
type AddCartLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// CheckoutRequest finalizes the cart into an invoice. Received is an
// optional cash amount handed over, used only to compute change.
type CheckoutRequest struct {
	Customer string           `json:"customer"`
	Payment  string           `json:"payment"`
	Received *decimal.Decimal `json:"received,omitempty"`
}

// CheckoutDTO is the completed sale plus the change due when a
// received amount was given.
type CheckoutDTO struct {
	Invoice InvoiceDTO       `json:"invoice"`
	Change  *decimal.Decimal `json:"change,omitempty"`
}

// =============================================================================
// INVOICES
// =============================================================================

// InvoiceDTO represents one completed sale.
type InvoiceDTO struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Customer string          `json:"customer"`
	Items    string          `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Payment  string          `json:"payment"`
}

func toInvoiceDTO(inv sales.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:       inv.ID,
		Date:     inv.Date.Format(time.RFC3339),
		Customer: inv.Customer,
		Items:    inv.ItemsString(),
		Total:    inv.Total,
		Payment:  string(inv.Payment),
	}
}

func toInvoiceDTOs(invoices []sales.Invoice) []InvoiceDTO {
	dtos := make([]InvoiceDTO, len(invoices))
	for i, inv := range invoices {
		dtos[i] = toInvoiceDTO(inv)
	}
	return dtos
}

// =============================================================================
// AUTH AND DASHBOARD
// =============================================================================

// LoginRequest carries credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionDTO is the explicit login context returned on success.
type SessionDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	IssuedAt string `json:"issued_at"`
}

func toSessionDTO(s auth.Session) SessionDTO {
	return SessionDTO{
		ID:       s.ID,
		Username: s.Username,
		Role:     string(s.Role),
		IssuedAt: s.IssuedAt.Format(time.RFC3339),
	}
}

// DashboardDTO mirrors the reference system's dashboard figures.
type DashboardDTO struct {
	TotalProducts int   `json:"total_products"`
	TotalUnits    int64 `json:"total_units"`
	LowStockItems int   `json:"low_stock_items"`
	TotalInvoices int   `json:"total_invoices"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
