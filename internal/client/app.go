package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-garage/internal/logger"
	"github.com/MKhiriev/go-garage/internal/service"
	"github.com/MKhiriev/go-garage/internal/tui"
	"github.com/MKhiriev/go-garage/internal/workers"
)

// flushTimeout bounds the final write of the local garage on exit.
const flushTimeout = 10 * time.Second

// UI is the interactive front end driven by App.
type UI interface {
	Run(ctx context.Context) error
}

var _ Client = (*App)(nil)

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app needs services and ui")
	}
	return &App{
		services: services,
		ui:       ui,
		workers:  workers.NewWorkers(services.Workers()...),
		logger:   logger,
	}, nil
}

// Run loads the garage, shows the UI and writes pending changes before it
// returns. SIGINT and SIGTERM stop the UI.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) (err error) {
	if err = a.services.Load(ctx); err != nil {
		return fmt.Errorf("load garage: %w", err)
	}

	a.workers.Run()
	defer func() {
		a.workers.Stop()

		flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		if flushErr := a.services.Flush(flushCtx); flushErr != nil {
			a.logger.Err(flushErr).Str("func", "App.run").Msg("pending changes were not saved")
			err = errors.Join(err, flushErr)
		}
	}()

	a.logger.Info().Msg("garage loaded")

	err = a.ui.Run(ctx)
	switch {
	case err == nil, errors.Is(err, tui.ErrUserQuit):
		return nil
	case ctx.Err() != nil:
		a.logger.Info().Msg("stopped by signal")
		return nil
	}
	return fmt.Errorf("run ui: %w", err)
}
