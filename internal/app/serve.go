package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"volwatch/internal/server"
	"volwatch/internal/volatility"
)

// Serve runs the dashboard HTTP API until SIGINT/SIGTERM.
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	handler := server.NewHandler(server.Options{
		Prices:       store,
		Subs:         store,
		Feedback:     store,
		MaxRows:      a.Config.Chart.MaxRows,
		DefaultRange: volatility.TimeRange(a.Config.Chart.DefaultRange),
	}, a.Logger)

	srv := server.New(a.Config.Server, handler, a.Logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	a.Logger.Info().Str("addr", a.Config.Server.Addr()).Msg("dashboard api started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error().Err(err).Msg("shutdown did not complete cleanly")
		return err
	}

	a.Logger.Info().Msg("dashboard api stopped")
	return nil
}
