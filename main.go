package main

import (
	"fmt"
	"log"
	"net/http"

	"redline/internal/api"
	"redline/internal/config"
	"redline/internal/diff"
	"redline/internal/logging"
	"redline/internal/middleware"
	"redline/internal/review"
	reviewStorage "redline/internal/review/storage"
	"redline/internal/vault"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	// Initialize logger
	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Initialize BadgerDB
	db, err := badger.Open(badger.DefaultOptions(cfg.Database.Path))
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	// Initialize document vault
	documentVault, err := vault.New(db, vault.Options{
		Root:      cfg.Vault.Path,
		CacheSize: cfg.Vault.CacheSize,
	})
	if err != nil {
		logger.Fatal("failed to initialize vault", zap.Error(err))
	}

	// Initialize review layer
	sessionStore := reviewStorage.NewStore(db)
	engine := diff.NewEngine(cfg.DiffConfig())
	manager := review.NewManager(documentVault, sessionStore, engine, logger.Logger)

	// Set up router
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthCheck)
	api.NewReviewHandler(manager, cfg.MaxDocumentBytes).Register(mux)

	// Apply middleware
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recover(logger),
	)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", zap.String("address", addr))

	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy"}`))
}
