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

	"github.com/agungalvian/wjg/internal/announcement"
	announcementStore "github.com/agungalvian/wjg/internal/announcement/store"
	"github.com/agungalvian/wjg/internal/auth"
	"github.com/agungalvian/wjg/internal/config"
	"github.com/agungalvian/wjg/internal/dashboard"
	"github.com/agungalvian/wjg/internal/database"
	"github.com/agungalvian/wjg/internal/export"
	wjgHttp "github.com/agungalvian/wjg/internal/http"
	announcementsHandler "github.com/agungalvian/wjg/internal/http/announcements"
	dashboardHandler "github.com/agungalvian/wjg/internal/http/dashboard"
	ledgerHandler "github.com/agungalvian/wjg/internal/http/ledger"
	matchingHandler "github.com/agungalvian/wjg/internal/http/matching"
	paymentsHandler "github.com/agungalvian/wjg/internal/http/payments"
	sessionHandler "github.com/agungalvian/wjg/internal/http/session"
	settingsHandler "github.com/agungalvian/wjg/internal/http/settings"
	usersHandler "github.com/agungalvian/wjg/internal/http/users"
	"github.com/agungalvian/wjg/internal/importer"
	"github.com/agungalvian/wjg/internal/ledger"
	ledgerStore "github.com/agungalvian/wjg/internal/ledger/store"
	"github.com/agungalvian/wjg/internal/logging"
	"github.com/agungalvian/wjg/internal/matching"
	matchingStore "github.com/agungalvian/wjg/internal/matching/store"
	"github.com/agungalvian/wjg/internal/payment"
	paymentStore "github.com/agungalvian/wjg/internal/payment/store"
	"github.com/agungalvian/wjg/internal/settings"
	settingsStore "github.com/agungalvian/wjg/internal/settings/store"
	"github.com/agungalvian/wjg/internal/user"
	userStore "github.com/agungalvian/wjg/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	if err := run(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	now, err := cfg.Clock()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	var (
		ledgerService   = ledger.NewService(ledgerStore.New(db), now)
		settingsService = settings.NewService(settingsStore.New(db))
		paymentService  = payment.NewService(paymentStore.New(db), settingsService, now)
		userService     = user.NewService(userStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		noticeService   = announcement.NewService(announcementStore.New(db))
		exportService   = export.NewService(ledgerService)
		dashService     = dashboard.NewService(ledgerService, paymentService, userService, now)
		tokens          = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Bootstrap.AdminPassword != "" {
		if err := userService.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
			return fmt.Errorf("bootstrapping admin: %w", err)
		}
	}

	router := wjgHttp.New(cfg.Server.AllowedOrigins, tokens, wjgHttp.Handlers{
		Session:   sessionHandler.NewHandler(userService, tokens),
		Dashboard: dashboardHandler.NewHandler(dashService),
		Ledger:    ledgerHandler.NewHandler(ledgerService, exportService, importer.NewParser(), matchingService, now),
		Payments:  paymentsHandler.NewHandler(paymentService, now),
		Users:     usersHandler.NewHandler(userService),
		Settings:  settingsHandler.NewHandler(settingsService),
		Matching:  matchingHandler.NewHandler(matchingService),

		Announcements: announcementsHandler.NewHandler(noticeService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr, "timezone", cfg.App.Timezone)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
