package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/vipledger/internal/auth"
	"github.com/MrJamesThe3rd/vipledger/internal/config"
	"github.com/MrJamesThe3rd/vipledger/internal/export"
	vipHttp "github.com/MrJamesThe3rd/vipledger/internal/http"
	"github.com/MrJamesThe3rd/vipledger/internal/http/dashboard"
	"github.com/MrJamesThe3rd/vipledger/internal/http/payroll"
	"github.com/MrJamesThe3rd/vipledger/internal/http/records"
	"github.com/MrJamesThe3rd/vipledger/internal/http/session"
	"github.com/MrJamesThe3rd/vipledger/internal/http/state"
	"github.com/MrJamesThe3rd/vipledger/internal/http/transfer"
	"github.com/MrJamesThe3rd/vipledger/internal/importer"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger/slot"
	"github.com/MrJamesThe3rd/vipledger/internal/observability"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rawSlot, closeSlot, err := slot.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeSlot()

	metrics := observability.NewMetrics()

	store := ledger.NewStore(
		observability.InstrumentSlot(rawSlot, metrics),
		ledger.WithLogger(logger),
		ledger.WithWriteThrough(cfg.Storage.WriteThrough),
	)

	if err := store.Load(ctx); err != nil {
		if !errors.Is(err, ledger.ErrLoad) {
			return err
		}

		logger.Warn("stored data unreadable, starting from defaults", "error", err)
	}

	gate := auth.NewGate(cfg.Auth.Password, auth.NewSigner(cfg.Auth.Secret, cfg.App.Name, cfg.Auth.SessionTTL))

	var (
		importService = importer.NewService(store, logger)
		exportService = export.NewService(store, cfg.App.Name)
	)

	router := vipHttp.New(vipHttp.Handlers{
		Session:   session.NewHandler(gate, cfg.IsProduction()),
		Records:   records.NewHandler(store),
		Payroll:   payroll.NewHandler(store),
		Dashboard: dashboard.NewHandler(store),
		Transfer:  transfer.NewHandler(importService, exportService),
		State:     state.NewHandler(store, logger),
	}, vipHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		LoginRate:      cfg.Server.LoginRate,
		Production:     cfg.IsProduction(),
		Metrics:        metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr, "storage", cfg.Storage.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}

		if store.Dirty() {
			if err := store.Save(shutdownCtx); err != nil {
				return err
			}

			logger.Info("unsaved changes written on shutdown")
		}

		return nil
	})

	return g.Wait()
}
