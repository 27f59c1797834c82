// Command fakeauthority serves an in-memory economy authority for local
// development and end-to-end runs of the point store client.
//
//	@title						Point Authority (in-memory)
//	@version					1.0
//	@description				Member point economy: profile, inventory, icons, roulette, wishlist, history and attendance.
//	@BasePath					/
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key
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

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/osse101/PointStore_Go/internal/fakeauthority"
	"github.com/osse101/PointStore_Go/internal/logger"
	"github.com/osse101/PointStore_Go/internal/server"
)

type settings struct {
	Port      int    `env:"AUTHORITY_PORT" envDefault:"8080"`
	APIKey    string `env:"API_KEY"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	Version   string `env:"VERSION" envDefault:"dev"`
}

const shutdownTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load()

	var cfg settings
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "fakeauthority", cfg.Version, "dev", false))

	authority := fakeauthority.New(fakeauthority.Options{APIKey: cfg.APIKey})
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, the authority accepts anonymous requests")
	}

	srv := server.New(fmt.Sprintf(":%d", cfg.Port), authority.Handler())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() { errs <- srv.Start() }()

	select {
	case err := <-errs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Authority failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	// open event streams end when the hub stops
	authority.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Authority forced to shutdown", "error", err)
	}
}
