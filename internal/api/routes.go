package api

import (
	"net/http"

	"promptvault/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	trashHandler := domain.Trash.Handler()

	routes.Register(
		mux,
		domain.Prompts.Handler().Routes(),
		domain.Favorites.Handler().Routes(),
		trashHandler.Routes(),
		// Soft-delete endpoints live under /prompts and /favorites but
		// belong to the trash domain, which owns the archival step.
		trashHandler.SoftDeleteRoutes(),
		domain.Settings.Handler().Routes(),
		domain.Drafts.Handler().Routes(),
	)
}
