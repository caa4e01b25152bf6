// Package api exposes plan analysis over HTTP. One endpoint accepts a plan
// export and returns its scored report; the server carries no state between
// requests.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/fieldshape/mlca/pkg/buildinfo"
	"github.com/fieldshape/mlca/pkg/complexity"
	apperrors "github.com/fieldshape/mlca/pkg/errors"
	"github.com/fieldshape/mlca/pkg/observability"
	"github.com/fieldshape/mlca/pkg/report"
	"github.com/fieldshape/mlca/pkg/rtplan"
)

// Server serves the analysis API.
type Server struct {
	logger  *log.Logger
	scoring complexity.Options
	router  chi.Router
}

// NewServer builds the API server with the given default scoring options.
// Requests may override individual options via query parameters.
func NewServer(logger *log.Logger, scoring complexity.Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{logger: logger, scoring: scoring}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Get("/healthz", s.handleHealth)
	r.Post("/api/v1/analyze", s.handleAnalyze)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe logs each request and feeds the API hooks.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleAnalyze scores the plan export in the request body and returns its
// report with full per-beam detail.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	plan, err := rtplan.Parse(r.Body)
	if err != nil {
		status := http.StatusBadRequest
		if apperrors.Is(err, apperrors.ErrCodeWrongModality) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	result, err := complexity.EvaluatePlan(plan, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pr := report.BuildPlanReport(plan, result)
	s.logger.Info("analyzed plan", "plan", plan.Name, "score", result.Score)
	writeJSON(w, http.StatusOK, pr)
}

// requestOptions applies query-parameter overrides to the server defaults.
func (s *Server) requestOptions(r *http.Request) (complexity.Options, error) {
	opts := s.scoring
	q := r.URL.Query()
	for param, field := range map[string]*float64{
		"xw": &opts.XWeight,
		"yw": &opts.YWeight,
		"xs": &opts.MaxFieldSizeX,
		"ys": &opts.MaxFieldSizeY,
	} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, apperrors.New(apperrors.ErrCodeInvalidOptions, "parameter %s: %v", param, err)
		}
		*field = v
	}
	return opts, opts.Validate()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{
		"code":  string(apperrors.GetCode(err)),
		"error": apperrors.UserMessage(err),
	})
}
