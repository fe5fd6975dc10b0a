// Package api assembles the API module with all domain systems and
// route registration.
package api

import (
	"context"
	"net/http"

	"promptvault/internal/config"
	"promptvault/internal/infrastructure"
	"promptvault/pkg/middleware"
	"promptvault/pkg/module"
)

// NewModule creates the API module with all domain handlers and
// middleware. The context is only used for auth provider discovery at
// startup.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	auth, err := middleware.Auth(ctx, &cfg.API.Auth, runtime.Logger)
	if err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(auth)
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
