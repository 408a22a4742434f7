package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/arvid/skriv/internal/contentservice"
	"github.com/arvid/skriv/internal/release"
)

// NewRouter creates a chi router with all API routes mounted. devMode
// controls the gate on the content-management routes; the deploy status
// endpoint stays reachable either way.
func NewRouter(svc *contentservice.Service, runner *release.Runner, devMode bool, repo, branch string) chi.Router {
	h := NewHandler(svc, runner, repo, branch)

	r := chi.NewRouter()

	// Static readiness descriptor, not gated.
	r.Get("/deploy/status", h.DeployStatus)

	// Everything that touches content or the release pipeline is
	// development-only.
	r.Group(func(g chi.Router) {
		g.Use(DevGate(devMode))

		g.Get("/articles", h.ListArticles)
		g.Post("/articles", h.CreateArticle)
		g.Put("/articles/{id}", h.UpdateArticle)
		g.Delete("/articles/{id}", h.DeleteArticle)

		g.Post("/tapes", h.CreateTape)
		g.Delete("/tapes/{id}", h.DeleteTape)

		g.Post("/deploy", h.Deploy)
	})

	return r
}
