/*
handlers.go - HTTP handlers for the inventory and sales engine

PURPOSE:
  Exposes the engine over REST. Handlers parse and validate input,
  delegate to the domain packages and serialize results; no business
  rules live here.

ENDPOINTS:
  Auth:
    POST   /api/login                 Validate credentials, get a session

  Products:
    GET    /api/products              List (insertion order), ?q= searches
    POST   /api/products              Add a product
    GET    /api/products/low-stock    Products at/below their threshold
    GET    /api/products/{sku}        Get one product
    PUT    /api/products/{sku}        Replace all mutable fields
    DELETE /api/products/{sku}        Remove a product
    GET    /api/products/{sku}/barcode Validate Code 128 encodability

  Stock:
    POST   /api/stock/adjustments     Apply one signed movement

  Cart (one in-memory cart; this is a single-user tool):
    GET    /api/cart                  Lines and recomputed total
    POST   /api/cart/lines            Add a line
    DELETE /api/cart                  Clear
    POST   /api/cart/checkout         Finalize into an invoice

  Invoices:
    GET    /api/invoices              History, ?customer= filters,
                                      ?order=desc sorts newest first

  Dashboard:
    GET    /api/dashboard             Aggregate counts

ERROR MAPPING:
  400 invalid input / quantity / payment / empty cart / bad barcode
  401 bad credentials
  404 unknown SKU
  409 duplicate SKU, insufficient stock
  500 store I/O failure
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/godsarin/InventoryManagement/auth"
	"github.com/godsarin/InventoryManagement/barcode"
	"github.com/godsarin/InventoryManagement/inventory"
	"github.com/godsarin/InventoryManagement/sales"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Catalog  *inventory.Catalog
	Stock    *inventory.StockLedger
	Engine   *sales.Engine
	Invoices *sales.InvoiceLedger
	Gate     *auth.Gate

	// The single live cart. The engine serves one operator at a time;
	// the mutex only guards against overlapping HTTP requests.
	mu   sync.Mutex
	cart *sales.Cart
}

// NewHandler wires a handler over the engine components.
func NewHandler(catalog *inventory.Catalog, stock *inventory.StockLedger, engine *sales.Engine, invoices *sales.InvoiceLedger, gate *auth.Gate) *Handler {
	return &Handler{
		Catalog:  catalog,
		Stock:    stock,
		Engine:   engine,
		Invoices: invoices,
		Gate:     gate,
		cart:     sales.NewCart(catalog),
	}
}

// =============================================================================
// AUTH
// =============================================================================

// Login validates credentials and returns a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	session, err := h.Gate.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeDomainError(w, "Login failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(session))
}

// =============================================================================
// PRODUCTS
// =============================================================================

// ListProducts returns the catalog; ?q= narrows by substring search.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	var products []inventory.Product
	if q != "" {
		products = h.Catalog.Find(r.Context(), q)
	} else {
		products = h.Catalog.List(r.Context())
	}
	writeJSON(w, http.StatusOK, toProductDTOs(products))
}

// GetProduct returns one product by SKU.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	p, err := h.Catalog.Get(r.Context(), sku)
	if err != nil {
		writeDomainError(w, "Failed to get product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// CreateProduct adds a product to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	p := inventory.Product{
		SKU:      req.SKU,
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Cost:     req.Cost,
		Quantity: req.Quantity,
		Supplier: req.Supplier,
		MinStock: req.MinStock,
	}
	if err := h.Catalog.Add(r.Context(), p); err != nil {
		writeDomainError(w, "Failed to add product", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(p))
}

// UpdateProduct replaces all mutable fields of a product.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Catalog.Update(r.Context(), sku, req.fields()); err != nil {
		writeDomainError(w, "Failed to update product", err)
		return
	}
	p, err := h.Catalog.Get(r.Context(), sku)
	if err != nil {
		writeDomainError(w, "Failed to read back product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// DeleteProduct removes a product from the catalog.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if err := h.Catalog.Remove(r.Context(), sku); err != nil {
		writeDomainError(w, "Failed to delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLowStock returns products at or below their minimum threshold.
func (h *Handler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProductDTOs(h.Catalog.LowStock(r.Context())))
}

// ValidateBarcode checks that the SKU is Code 128 encodable.
func (h *Handler) ValidateBarcode(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if _, err := h.Catalog.Get(r.Context(), sku); err != nil {
		writeDomainError(w, "Failed to get product", err)
		return
	}
	if err := barcode.ValidateSKU(sku); err != nil {
		writeError(w, http.StatusBadRequest, "SKU not barcode-encodable", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// STOCK
// =============================================================================

// AdjustStock applies one signed movement and reports the new quantity.
func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	qty, err := h.Stock.Adjust(r.Context(), req.SKU, req.Delta, req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to adjust stock", err)
		return
	}
	writeJSON(w, http.StatusOK, AdjustStockDTO{SKU: req.SKU, Quantity: qty})
}

// =============================================================================
// CART
// =============================================================================

// GetCart returns the current cart and its recomputed total.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	dto := toCartDTO(h.cart)
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, dto)
}

// AddCartLine adds a product line to the cart.
func (h *Handler) AddCartLine(w http.ResponseWriter, r *http.Request) {
	var req AddCartLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.cart.AddLine(r.Context(), req.SKU, req.Quantity); err != nil {
		writeDomainError(w, "Failed to add to cart", err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(h.cart))
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.cart.Clear()
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// Checkout finalizes the cart into an invoice.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	payment, err := sales.ParsePaymentType(req.Payment)
	if err != nil {
		writeDomainError(w, "Checkout rejected", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	total := h.cart.Total()
	invoice, err := h.Engine.Checkout(r.Context(), h.cart, req.Customer, payment)
	if err != nil {
		writeDomainError(w, "Checkout rejected", err)
		return
	}

	dto := CheckoutDTO{Invoice: toInvoiceDTO(invoice)}
	if req.Received != nil {
		c := req.Received.Sub(total)
		dto.Change = &c
	}
	writeJSON(w, http.StatusCreated, dto)
}

// =============================================================================
// INVOICES AND DASHBOARD
// =============================================================================

// ListInvoices returns sale history. ?customer= filters by substring;
// ?order=desc returns newest first.
func (h *Handler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var invoices []sales.Invoice
	switch {
	case r.URL.Query().Get("customer") != "":
		invoices = h.Invoices.FindByCustomer(ctx, r.URL.Query().Get("customer"))
	case r.URL.Query().Get("order") == "desc":
		invoices = h.Invoices.SortedByDateDescending(ctx)
	default:
		invoices = h.Invoices.All(ctx)
	}
	writeJSON(w, http.StatusOK, toInvoiceDTOs(invoices))
}

// GetDashboard returns the aggregate figures the reference system shows
// on its dashboard tab.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	s := h.Catalog.Summary(ctx)
	writeJSON(w, http.StatusOK, DashboardDTO{
		TotalProducts: s.TotalProducts,
		TotalUnits:    s.TotalUnits,
		LowStockItems: s.LowStockItems,
		TotalInvoices: h.Invoices.Count(ctx),
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine error kinds onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, inventory.ErrDuplicateKey),
		errors.Is(err, inventory.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrOutOfStock),
		errors.Is(err, inventory.ErrInvalidProduct),
		errors.Is(err, sales.ErrEmptyCart),
		errors.Is(err, sales.ErrInvalidPayment):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrUserExists):
		status = http.StatusConflict
	}
	writeError(w, status, message, err)
}
