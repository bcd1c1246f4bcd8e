package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	invoiceapiadapter "github.com/dstanchev/invoicepanel/internal/adapter/driven/invoiceapi"
	sqliteadapter "github.com/dstanchev/invoicepanel/internal/adapter/driven/sqlite"
	webhandler "github.com/dstanchev/invoicepanel/internal/adapter/driving/web"
	"github.com/dstanchev/invoicepanel/internal/application"
	"github.com/dstanchev/invoicepanel/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on missing required env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"api_base_url", cfg.APIBaseURL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open local state database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire the driven adapters.
	sessionStore := sqliteadapter.NewSessionRepo(db, cfg.SecretKey)
	prefsStore := sqliteadapter.NewPrefsRepo(db)

	// 6. Restore the persisted session so a restart keeps the user signed in.
	session := application.NewSession(sessionStore)
	if err := session.Restore(ctx); err != nil {
		return err
	}

	api := newAPIClient(cfg, session)

	// 7. Application services.
	auth := application.NewAuthService(api, session)
	cache := application.NewEntityCache(api, session)
	notifier := application.NewNotifier(application.DefaultNotificationTTL)
	mutations := application.NewMutationService(api, cache, notifier)
	viewState := application.NewViewState(prefsStore)
	if err := viewState.Restore(ctx); err != nil {
		slog.Warn("could not restore view state", "error", err)
	}

	// 8. Web handler and routes.
	handler, err := webhandler.NewHandler(auth, session, cache, mutations, viewState, notifier, slog.Default())
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	webhandler.RegisterRoutes(mux, handler)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           webhandler.NewServer(mux, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("invoicepanel started", "listen_addr", cfg.ListenAddr)

	// 9. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 10. Graceful shutdown with 10s timeout to drain the HTTP server.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newAPIClient builds the remote API client. Requests have no deadline unless
// one is configured; long-running invoice generation is allowed to finish.
func newAPIClient(cfg *config.Config, session *application.Session) *invoiceapiadapter.Client {
	if cfg.HTTPTimeout > 0 {
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		return invoiceapiadapter.NewClientWithHTTPClient(httpClient, cfg.APIBaseURL, session)
	}
	return invoiceapiadapter.NewClient(cfg.APIBaseURL, session)
}
