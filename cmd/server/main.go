/*
main.go - Application entry point

PURPOSE:
  Starts the inventory management server: resolves configuration,
  selects the table store backend, wires the engine components and
  serves the HTTP API with graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (defaults, inventory.yaml, INVENTORY_* env)
  2. Parse command-line flags (flags override config)
  3. Open the table store (flat files or SQLite)
  4. Seed the default admin if the users table is empty
  5. Serve until SIGINT/SIGTERM, then drain for up to 30s

COMMAND-LINE FLAGS:
  -port     HTTP server port
  -data     data directory for flat table files
  -backend  "flatfile" or "sqlite"
  -db       SQLite database path (sqlite backend only)

EXAMPLES:
  # Flat CSV tables in ./data
  ./server

  # Everything in one SQLite file
  ./server -backend=sqlite -db=./data/inventory.db

SEE ALSO:
  - config/config.go: configuration sources and keys
  - api/server.go: router configuration
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/godsarin/InventoryManagement/api"
	"github.com/godsarin/InventoryManagement/auth"
	"github.com/godsarin/InventoryManagement/config"
	"github.com/godsarin/InventoryManagement/inventory"
	"github.com/godsarin/InventoryManagement/sales"
	"github.com/godsarin/InventoryManagement/store/flatfile"
	"github.com/godsarin/InventoryManagement/store/sqlite"
	"github.com/godsarin/InventoryManagement/tabular"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dataDir := flag.String("data", cfg.DataDir, "data directory for flat table files")
	backend := flag.String("backend", cfg.Backend, "table store backend: flatfile or sqlite")
	dbPath := flag.String("db", cfg.SQLitePath, "SQLite database path (sqlite backend)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Table store
	var store tabular.Store
	switch *backend {
	case "flatfile":
		fs, err := flatfile.New(*dataDir)
		if err != nil {
			log.Fatalf("Failed to open data directory: %v", err)
		}
		store = fs
	case "sqlite":
		db, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		store = db
	default:
		log.Fatalf("Unknown backend %q (want flatfile or sqlite)", *backend)
	}

	// Engine components
	catalog := inventory.NewCatalog(store)
	stock := inventory.NewStockLedger(catalog)
	invoices := sales.NewInvoiceLedger(store)
	engine := sales.NewEngine(stock, invoices)
	gate := auth.NewGate(store)

	if err := gate.EnsureDefaultAdmin(context.Background(), cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}

	handler := api.NewHandler(catalog, stock, engine, invoices, gate)
	router := api.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", *port).Str("backend", *backend).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info().Msg("server stopped")
}
