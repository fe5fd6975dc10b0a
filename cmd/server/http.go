package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"promptvault/internal/config"
	"promptvault/pkg/lifecycle"
)

// webServer runs the HTTP listener under lifecycle control. The bind
// happens synchronously in Start so a taken port fails startup
// immediately instead of surfacing later from the serve goroutine.
type webServer struct {
	server *http.Server
	cfg    *config.ServerConfig
	logger *slog.Logger
}

func newWebServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *webServer {
	return &webServer{
		server: &http.Server{
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
			IdleTimeout:  cfg.IdleTimeoutDuration(),
		},
		cfg:    cfg,
		logger: logger.With("system", "http"),
	}
}

// Start binds the listen address, serves in the background, and
// registers a drain hook with the lifecycle coordinator. Draining waits
// for in-flight requests up to the configured shutdown timeout.
func (w *webServer) Start(lc *lifecycle.Coordinator) error {
	listener, err := net.Listen("tcp", w.cfg.Addr())
	if err != nil {
		return fmt.Errorf("bind %s: %w", w.cfg.Addr(), err)
	}

	go func() {
		w.logger.Info("listening", "addr", listener.Addr().String())
		if err := w.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Error("serve failed", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		w.logger.Info("draining connections")

		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.ShutdownTimeoutDuration())
		defer cancel()

		if err := w.server.Shutdown(ctx); err != nil {
			w.logger.Error("drain incomplete", "error", err)
			return
		}
		w.logger.Info("listener closed")
	})

	return nil
}
