// Package api serves the dashboard pipeline as JSON for non-browser clients.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"gemdash/app"
	"gemdash/internal"
	"gemdash/internal/errors"
	"gemdash/internal/telemetry"
)

// Handler holds the JSON endpoints
type Handler struct {
	service *app.DashboardService
	logger  *internal.Logger
}

// NewHandler creates the JSON API handler
func NewHandler(service *app.DashboardService, logger *internal.Logger) *Handler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Handler{service: service, logger: logger.With("API")}
}

// NewRouter builds the /api/v1 router with CORS for the given origins
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the endpoints on r
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/options", h.handleOptions)
		r.Get("/view", h.handleView)
		r.Get("/sample", h.handleSample)
	})
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	filters, err := h.service.Options(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	options := make(map[string][]string, len(filters))
	for _, f := range filters {
		options[string(f.Field)] = f.Options
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"options": options})
}

// handleView accepts the same cut, color and clarity parameters as the page
func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	dash, err := h.service.Compose(r.Context(), r.URL.Query(), telemetry.SurfaceAPI)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dash)
}

func (h *Handler) handleSample(w http.ResponseWriter, r *http.Request) {
	sample, err := h.service.Sample(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sample)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	}
	h.writeJSON(w, status, map[string]string{
		"error":   errors.GetCode(err),
		"message": err.Error(),
	})
}
