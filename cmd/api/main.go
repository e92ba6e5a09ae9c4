package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"chequetrack/internal/auth"
	authStore "chequetrack/internal/auth/store"
	"chequetrack/internal/cheque"
	chequeStore "chequetrack/internal/cheque/store"
	"chequetrack/internal/config"
	"chequetrack/internal/database"
	"chequetrack/internal/export"
	"chequetrack/internal/followup"
	followupStore "chequetrack/internal/followup/store"
	chequetrackHttp "chequetrack/internal/http"
	authHandler "chequetrack/internal/http/auth"
	chequeHandler "chequetrack/internal/http/cheque"
	exportHandler "chequetrack/internal/http/export"
	followupHandler "chequetrack/internal/http/followup"
	importHandler "chequetrack/internal/http/importcsv"
	partyHandler "chequetrack/internal/http/party"
	statsHandler "chequetrack/internal/http/stats"
	"chequetrack/internal/importer"
	"chequetrack/internal/logging"
	"chequetrack/internal/party"
	partyStore "chequetrack/internal/party/store"
)

func main() {
	_ = godotenv.Load()

	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	var (
		authService     = auth.NewService(authStore.New(db), auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
		chequeService   = cheque.NewService(chequeStore.New(db))
		followUpService = followup.NewService(followupStore.New(db))
		partyService    = party.NewService(partyStore.New(db))
		importService   = importer.NewService()
		exportService   = export.NewService(chequeService)
	)

	var (
		authH     = authHandler.NewHandler(authService)
		chequeH   = chequeHandler.NewHandler(chequeService)
		followUpH = followupHandler.NewHandler(followUpService, chequeService)
		statsH    = statsHandler.NewHandler(chequeService)
		importH   = importHandler.NewHandler(importService, chequeService, partyService)
		exportH   = exportHandler.NewHandler(exportService)
		partyH    = partyHandler.NewHandler(partyService)
	)

	router := chequetrackHttp.New(authService, authH, chequeH, followUpH, statsH, importH, exportH, partyH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
