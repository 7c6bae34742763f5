package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkravtsov/chatroom/internal/config"
	"github.com/mkravtsov/chatroom/internal/core"
	"github.com/mkravtsov/chatroom/internal/log"
	transporthttp "github.com/mkravtsov/chatroom/internal/transport/http"
)

// App wires together the room core and the transport layer.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	room            *core.Room
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	room := core.NewRoom(log.Component(logger, "room"))
	server := transporthttp.NewServer(room, cfg, log.Component(logger, "http"))

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		room:            room,
		log:             logger,
	}
}

// Room exposes the registry, mainly for tests and the API layer.
func (a *App) Room() *core.Room {
	return a.room
}

// Run starts the HTTP server and blocks until context cancellation or a
// fatal server error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	a.log.Info().Str("addr", a.server.Addr).Msg("server listening")

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
