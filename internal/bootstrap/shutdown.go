package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/PointStore_Go/internal/pointstore"
	"github.com/osse101/PointStore_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Either may be nil.
type ShutdownComponents struct {
	Server  *server.Server
	Economy *pointstore.Economy
}

// GracefulShutdown stops the health server first so readiness probes fail
// while the economy drains its pending refreshes.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Economy != nil {
		slog.Info(LogMsgStoppingEconomy)
		stopped := make(chan struct{})
		go func() {
			components.Economy.Stop(ctx)
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			slog.Error(LogMsgEconomyStopTimeout, "error", ctx.Err())
		}
	}

	slog.Info(LogMsgShutdownComplete)
}
