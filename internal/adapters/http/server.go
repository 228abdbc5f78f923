// Package http exposes the meander engine, HVA tracker and intervention
// catalog as a JSON API. Domain errors map onto HTTP status codes; the
// handlers hold no state of their own.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/meander/internal/logging"
	"github.com/aretw0/meander/internal/presentation/graph"
	"github.com/aretw0/meander/pkg/domain"
	"github.com/aretw0/meander/pkg/hva"
	"github.com/aretw0/meander/pkg/interventions"
)

// Engine defines the model surface the API serves. *meander.Engine
// satisfies it.
type Engine interface {
	Fit(ctx context.Context, observations []domain.Observation) error
	Segments() ([]string, error)
	Matrix() ([][]float64, error)
	PredictNext(ctx context.Context, segment string) (string, error)
	PredictPath(ctx context.Context, start string, steps int) ([]string, error)
	TransitionProbabilities(segment string) (map[string]float64, error)
	TopPaths(ctx context.Context, start string, steps, topK int) ([]domain.Path, error)
}

// Defaults are applied when a request omits steps or top_k.
type Defaults struct {
	Steps int
	TopK  int
}

// Server wires the engine and the catalogs into HTTP handlers.
type Server struct {
	engine   Engine
	tracker  *hva.Tracker
	catalog  *interventions.Catalog
	analyzer *interventions.Analyzer
	logger   *slog.Logger
	defaults Defaults
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets the request error logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithDefaults overrides the prediction defaults.
func WithDefaults(d Defaults) ServerOption {
	return func(s *Server) {
		s.defaults = d
	}
}

// NewHandler builds the API router.
func NewHandler(engine Engine, tracker *hva.Tracker, catalog *interventions.Catalog, analyzer *interventions.Analyzer, opts ...ServerOption) http.Handler {
	s := &Server{
		engine:   engine,
		tracker:  tracker,
		catalog:  catalog,
		analyzer: analyzer,
		logger:   logging.NewNop(),
		defaults: Defaults{Steps: 3, TopK: 5},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/fit", s.fit)
	r.Get("/segments", s.segments)
	r.Get("/segments/{segment}/next", s.predictNext)
	r.Get("/segments/{segment}/probabilities", s.probabilities)
	r.Get("/segments/{segment}/path", s.predictPath)
	r.Get("/segments/{segment}/paths", s.topPaths)
	r.Get("/matrix", s.matrix)
	r.Get("/graph", s.graph)

	r.Route("/hvas", func(r chi.Router) {
		r.Post("/", s.defineHVA)
		r.Get("/", s.listHVAs)
		r.Get("/{id}/summary", s.hvaSummary)
		r.Post("/{id}/records", s.recordHVA)
	})
	r.Get("/customers/{id}/hvas", s.customerHVAs)

	r.Route("/interventions", func(r chi.Router) {
		r.Post("/", s.addIntervention)
		r.Get("/", s.listInterventions)
		r.Get("/{id}", s.getIntervention)
		r.Put("/{id}", s.updateIntervention)
		r.Delete("/{id}", s.deleteIntervention)
		r.Post("/{id}/results", s.recordResult)
		r.Get("/{id}/summary", s.interventionSummary)
	})

	return r
}

// -- Model endpoints --

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) fit(w http.ResponseWriter, r *http.Request) {
	var observations []domain.Observation
	if err := json.NewDecoder(r.Body).Decode(&observations); err != nil {
		s.writeError(w, r, badBody(err))
		return
	}
	if err := s.engine.Fit(r.Context(), observations); err != nil {
		s.writeError(w, r, err)
		return
	}
	segments, err := s.engine.Segments()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"observations": len(observations),
		"segments":     len(segments),
	})
}

func (s *Server) segments(w http.ResponseWriter, r *http.Request) {
	segments, err := s.engine.Segments()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"segments": segments})
}

func (s *Server) matrix(w http.ResponseWriter, r *http.Request) {
	segments, err := s.engine.Segments()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	matrix, err := s.engine.Matrix()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"segments": segments,
		"matrix":   matrix,
	})
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	segments, err := s.engine.Segments()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	matrix, err := s.engine.Matrix()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var overlay *graph.Overlay
	if highlight := r.URL.Query().Get("highlight"); highlight != "" {
		overlay = &graph.Overlay{Highlight: highlight}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(graph.GenerateMermaid(segments, matrix, overlay)))
}

func (s *Server) predictNext(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	next, err := s.engine.PredictNext(r.Context(), segment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"segment": segment,
		"next":    next,
	})
}

func (s *Server) probabilities(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	probs, err := s.engine.TransitionProbabilities(segment)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"segment":       segment,
		"probabilities": probs,
	})
}

func (s *Server) predictPath(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	steps, err := s.queryInt(r, "steps", s.defaults.Steps)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	path, err := s.engine.PredictPath(r.Context(), segment, steps)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"path": path})
}

func (s *Server) topPaths(w http.ResponseWriter, r *http.Request) {
	segment := chi.URLParam(r, "segment")
	steps, err := s.queryInt(r, "steps", s.defaults.Steps)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	topK, err := s.queryInt(r, "top_k", s.defaults.TopK)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	paths, err := s.engine.TopPaths(r.Context(), segment, steps, topK)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"paths": paths})
}

// -- HVA endpoints --

func (s *Server) defineHVA(w http.ResponseWriter, r *http.Request) {
	var def domain.HVADefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		s.writeError(w, r, badBody(err))
		return
	}
	if err := s.tracker.Define(r.Context(), def); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, def)
}

func (s *Server) listHVAs(w http.ResponseWriter, r *http.Request) {
	defs, err := s.tracker.Definitions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"hvas": defs})
}

func (s *Server) hvaSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.tracker.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) recordHVA(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string         `json:"customer_id"`
		Timestamp  time.Time      `json:"timestamp"`
		Metadata   map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, badBody(err))
		return
	}
	hvaID := chi.URLParam(r, "id")
	if err := s.tracker.Record(r.Context(), body.CustomerID, hvaID, body.Timestamp, body.Metadata); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) customerHVAs(w http.ResponseWriter, r *http.Request) {
	history, err := s.tracker.CustomerHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"records": history})
}

// -- Intervention endpoints --

func (s *Server) addIntervention(w http.ResponseWriter, r *http.Request) {
	var iv domain.Intervention
	if err := json.NewDecoder(r.Body).Decode(&iv); err != nil {
		s.writeError(w, r, badBody(err))
		return
	}
	if err := s.catalog.Add(r.Context(), iv); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, iv)
}

func (s *Server) listInterventions(w http.ResponseWriter, r *http.Request) {
	ivs, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"interventions": ivs})
}

func (s *Server) getIntervention(w http.ResponseWriter, r *http.Request) {
	iv, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, iv)
}

func (s *Server) updateIntervention(w http.ResponseWriter, r *http.Request) {
	var iv domain.Intervention
	if err := json.NewDecoder(r.Body).Decode(&iv); err != nil {
		s.writeError(w, r, badBody(err))
		return
	}
	iv.ID = chi.URLParam(r, "id")
	if err := s.catalog.Update(r.Context(), iv); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, iv)
}

func (s *Server) deleteIntervention(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) recordResult(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string    `json:"customer_id"`
		Timestamp  time.Time `json:"timestamp"`
		Outcome    string    `json:"outcome"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, badBody(err))
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.analyzer.RecordResult(r.Context(), id, body.CustomerID, body.Timestamp, body.Outcome); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) interventionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analyzer.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

// -- Helpers --

func badBody(err error) error {
	return errors.Join(domain.ErrInvalidArgument, err)
}

func (s *Server) queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Join(domain.ErrInvalidArgument, err)
	}
	return v, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

// writeError maps domain errors onto status codes. Unrecognized errors are
// internal.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownSegment),
		errors.Is(err, domain.ErrHVANotDefined),
		errors.Is(err, domain.ErrInterventionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotFitted):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNoTransitions):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
