package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/dividircuenta/backend/internal/config"
	"github.com/dividircuenta/backend/internal/exchange"
	"github.com/dividircuenta/backend/internal/server"
	"github.com/dividircuenta/backend/internal/service"
	"github.com/dividircuenta/backend/internal/storage"
	"github.com/dividircuenta/backend/internal/storage/memory"
	"github.com/dividircuenta/backend/internal/storage/sqlite"
	"github.com/dividircuenta/backend/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	var store storage.Store
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		store, err = sqlite.New(cfg.DBPath)
		if err != nil {
			slog.Error("Failed to initialize storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Storage initialized", "backend", "sqlite", "database", cfg.DBPath)
	default:
		store = memory.New()
		slog.Info("Storage initialized", "backend", "memory")
	}
	defer store.Close()

	rates := exchange.NewCached(
		exchange.NewClient(cfg.RateAPIURL, cfg.RateBase, cfg.RateTarget, 5*time.Second),
		cfg.RateCacheTTL,
	)

	ledger := service.NewLedger(store)
	srv := server.New(ledger, rates, cfg.FallbackRate)

	// Wrap with h2c so HTTP/2 clients work without TLS
	handler := h2c.NewHandler(srv.Handler(), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
