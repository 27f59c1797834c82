// Command pointstore is the member-facing point store console.
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

	"github.com/osse101/PointStore_Go/internal/bootstrap"
	"github.com/osse101/PointStore_Go/internal/config"
	"github.com/osse101/PointStore_Go/internal/console"
	"github.com/osse101/PointStore_Go/internal/economy"
	"github.com/osse101/PointStore_Go/internal/notify"
	"github.com/osse101/PointStore_Go/internal/pointstore"
	"github.com/osse101/PointStore_Go/internal/refresh"
	"github.com/osse101/PointStore_Go/internal/server"
	"github.com/osse101/PointStore_Go/internal/session"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	for _, w := range warnings {
		slog.Warn("Configuration warning", "warning", w)
	}

	clientOpts := economy.DefaultOptions(cfg.APIURL)
	clientOpts.APIKey = cfg.APIKey
	clientOpts.Timeout = cfg.RequestTimeout
	clientOpts.MaxRetries = cfg.MaxRetries
	clientOpts.IconCacheSize = cfg.IconCacheSize
	clientOpts.IconCacheTTL = cfg.IconCacheTTL

	loginID := cfg.LoginID
	if cfg.SessionToken != "" {
		token, err := session.Parse(cfg.SessionToken)
		if err != nil {
			return err
		}
		if err := token.Check(time.Now()); err != nil {
			return err
		}
		clientOpts.SessionToken = token
		if loginID == "" {
			loginID = token.Subject()
		}
	}

	var events *refresh.SSEClient
	if cfg.SSEEnabled {
		events = refresh.NewSSEClient(cfg.APIURL, credentials(clientOpts), refresh.AuthorityEventTypes)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := notify.NewTerminal(os.Stdin, os.Stdout)
	store := pointstore.New(pointstore.Options{
		Client:            economy.NewAPIClient(clientOpts),
		UI:                term,
		LoginID:           loginID,
		RouletteAnimation: cfg.RouletteAnimation,
		RefreshWorkers:    cfg.RefreshWorkers,
		Events:            events,
	})
	store.Start(ctx)

	var health *server.Server
	if cfg.HealthPort > 0 {
		health = server.New(fmt.Sprintf(":%d", cfg.HealthPort), server.NewRouter(server.RouterConfig{
			Readiness: store,
		}))
		go func() {
			if err := health.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Health server failed", "error", err)
			}
		}()
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{Server: health, Economy: store})
	}()

	// a failed first load is shown and retried with the refresh command
	if err := store.LoadAll(ctx); err != nil {
		slog.Warn("Initial load failed", "error", err)
		notify.Failure(ctx, term, notify.MsgNetworkError, err)
	}

	con := console.New(store, os.Stdout)
	term.OnNavigate = con.Navigate

	// stdin reads do not observe ctx, so a signal must not wait on Run
	done := make(chan error, 1)
	go func() { done <- con.Run(ctx, term) }()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-ctx.Done():
		slog.Info("Interrupted")
	}
	return nil
}

// credentials decorates event stream requests the way the API client does
func credentials(opts economy.Options) refresh.HeaderFunc {
	return func(h http.Header) {
		if opts.APIKey != "" {
			h.Set(economy.HeaderAPIKey, opts.APIKey)
		}
		if opts.SessionToken != nil {
			h.Set(economy.HeaderAuthorization, "Bearer "+opts.SessionToken.Raw())
		}
	}
}
