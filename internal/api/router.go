package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/pocketnotes/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events, which also accepts the
// token as an access_token query parameter.
func NewRouter(svc *noteservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))

		// Notes.
		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)
		r.Post("/notes/new", h.NewFilename)
		r.Post("/notes/reload", h.ReloadNotes)
		r.Get("/notes/{filename}", h.GetNote)
		r.Put("/notes/{filename}", h.SaveNote)
		r.Delete("/notes/{filename}", h.DeleteNote)
		r.Get("/notes/{filename}/share", h.ShareNote)

		// Activity journal.
		r.Get("/activity", h.Activity)
	})

	if sseHandler != nil {
		r.With(StreamAuthMiddleware(authEnabled, token)).Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
