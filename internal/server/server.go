package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/rolodex/internal/engine"
	"github.com/lazypower/rolodex/internal/store"
)

// Server is the rolodex HTTP API server.
type Server struct {
	db      *store.DB
	engine  *engine.Engine
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server with the given database, engine, and version string.
func New(db *store.DB, eng *engine.Engine, version string) *Server {
	s := &Server{
		db:      db,
		engine:  eng,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.handleListContacts)
			r.Post("/", s.handleCreateContact)
			r.Get("/{contactID}", s.handleGetContact)
			r.Put("/{contactID}", s.handleUpdateContact)
			r.Delete("/{contactID}", s.handleArchiveContact)
			r.Get("/{contactID}/interactions", s.handleContactInteractions)
		})

		r.Route("/interactions", func(r chi.Router) {
			r.Get("/", s.handleListInteractions)
			r.Post("/", s.handleCreateInteraction)
			r.Put("/{interactionID}", s.handleUpdateInteraction)
			r.Delete("/{interactionID}", s.handleDeleteInteraction)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", s.handleDueContacts)
			r.Get("/birthdays", s.handleBirthdays)
			r.Put("/{contactID}/snooze", s.handleSnooze)
			r.Put("/{contactID}/dismiss", s.handleDismiss)
		})

		r.Get("/search", s.handleSearch)

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", s.handleListTags)
			r.Post("/", s.handleCreateTag)
			r.Get("/contacts/{contactID}/tags", s.handleContactTags)
			r.Post("/contacts/{contactID}/tags", s.handleAddContactTag)
			r.Delete("/contacts/{contactID}/tags/{tagID}", s.handleRemoveContactTag)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/spheres", s.handleListSpheres)
			r.Put("/spheres/{sphere}", s.handleUpdateSphere)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps sentinel errors onto HTTP statuses: not-found to
// 404, invalid input to 400, anything else to 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, engine.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
