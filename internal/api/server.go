// Package api implements the HTTP layout API.
//
// The API is a thin transport layer over the pipeline Runner: it decodes a
// layout request, runs the pipeline, and returns the layout document as
// JSON. All layout semantics live in the engine packages; the API adds only
// request IDs, logging, and error mapping.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/tmorell/slidegrid/pkg/buildinfo"
	"github.com/tmorell/slidegrid/pkg/errors"
	"github.com/tmorell/slidegrid/pkg/pipeline"
	"github.com/tmorell/slidegrid/pkg/slide"
)

// maxRequestBody bounds layout request bodies. A slide input is tiny; the
// limit mainly guards against accidental uploads.
const maxRequestBody = 1 << 20 // 1 MiB

// Server handles layout API requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates the API handler with all routes registered.
func New(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/layouts", s.handleLayout)

	return r
}

// =============================================================================
// Handlers
// =============================================================================

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

// layoutResponse is the body of POST /v1/layouts.
type layoutResponse struct {
	Layout    slide.Layout `json:"layout"`
	InputHash string       `json:"input_hash"`
	Cached    bool         `json:"cached"`
	Duration  string       `json:"duration"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	result, cached, err := s.runner.LayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:    result.Layout,
		InputHash: result.InputHash,
		Cached:    cached,
		Duration:  result.Stats.LayoutTime.Round(time.Microsecond).String(),
	})
}

// =============================================================================
// Middleware
// =============================================================================

// requestID tags every request with a UUID, echoed in the X-Request-ID
// header. An inbound header value is preserved for trace continuity.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(r.Context()))
	})
}

// logRequests logs one line per request with method, path, status, and timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", ww.Header().Get("X-Request-ID"))
	})
}

// =============================================================================
// Response Helpers
// =============================================================================

// errorResponse is the JSON body for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

// statusForCode maps engine error codes onto HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidSlide, errors.ErrCodeInvalidContainer,
		errors.ErrCodeInvalidFlow, errors.ErrCodeInvalidImportance, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPattern:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
