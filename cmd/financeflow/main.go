package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financeflow/internal/config"
	"financeflow/internal/events"
	apphttp "financeflow/internal/http"
	"financeflow/internal/identity"
	"financeflow/internal/ledger"
	applog "financeflow/internal/log"
	"financeflow/internal/profile"
	"financeflow/internal/services"
	"financeflow/internal/store"
	"financeflow/internal/store/document"
	"financeflow/internal/store/session"
)

func main() {
	cfg := config.Load()

	logger := applog.New(applog.ParseLevel(cfg.LogLevel), applog.ComponentApp)
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	budget, err := cfg.Budget()
	if err != nil {
		logger.Error("Invalid default budget", "error", err)
		os.Exit(1)
	}
	prof, err := profile.New(cfg.DefaultCurrency, budget)
	if err != nil {
		logger.Error("Invalid profile defaults", "error", err)
		os.Exit(1)
	}

	// Remote tier: per-identity document collections in sqlite.
	db, err := document.Open(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open document store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()
	remote := func(uid string) store.RecordStore {
		return document.NewStore(db, uid)
	}

	// Local tier: ephemeral session scratch for anonymous use.
	local := session.NewEphemeral()

	engine := ledger.New(local)
	selector := identity.NewSelector(engine, local, remote)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := selector.Start(ctx); err != nil {
		// An empty set with a retry condition is fine at startup; UI
		// collaborators are told to retry the load.
		logger.Warn("Initial load failed, starting with empty record set", "error", err)
	}

	provider := identity.NewStaticProvider([]identity.User{
		{Email: cfg.AuthEmail, Password: cfg.AuthPassword, Name: cfg.AuthName},
	})
	go selector.Run(ctx, provider.Changes())

	// Optional change feed.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change feed", "error", err)
		} else {
			publisher = client
			logger.Info("Initialized change feed", "exchange", cfg.AMQPExchange)
		}
	}

	svc := services.NewLedgerService(engine, selector, prof, publisher)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close service", "error", err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, svc, provider, selector, prof, logger)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting financeflow server", "port", cfg.Port, "db_path", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
