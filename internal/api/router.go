package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notebase/internal/store"
)

// NewRouter creates a chi router with the command endpoints mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(repo store.Repository, n Notifier, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(NewCommands(repo, n))

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/commands", h.ListCommands)
	r.Post("/commands/{name}", h.Invoke)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
