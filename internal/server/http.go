package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/alfredjeanlab/counsel/internal/model"
	"github.com/alfredjeanlab/counsel/internal/store"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	mux.HandleFunc("GET /v1/records/{kind}", s.handleSearch)
	mux.HandleFunc("POST /v1/records/{kind}", s.handleCreateRecord)
	mux.HandleFunc("GET /v1/records/{kind}/{id}", s.handleGetRecord)
	mux.HandleFunc("PUT /v1/records/{kind}/{id}", s.handlePutRecord)
	mux.HandleFunc("DELETE /v1/records/{kind}/{id}", s.handleDeleteRecord)
	mux.HandleFunc("POST /v1/lawyers/{id}/verify", s.handleVerifyLawyer)
	mux.HandleFunc("GET /v1/dashboards/{role}", s.handleDashboard)
	mux.HandleFunc("GET /v1/schemas/{kind}", s.handleSchema)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	return LoggingMiddleware(s.log, AuthMiddleware(authToken, mux))
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Query parameters that page results rather than filter them.
const (
	paramLimit  = "limit"
	paramOffset = "offset"
	paramTab    = "tab"
)

// handleSearch handles GET /v1/records/{kind}. Every query parameter other
// than limit and offset is a filter criterion.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := s.search(r.Context(), r.PathValue("kind"),
		model.ParseCriteria(q, paramLimit, paramOffset),
		queryInt(q.Get(paramLimit)), queryInt(q.Get(paramOffset)))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// queryInt parses a paging parameter; malformed values count as unset.
func queryInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// recordInput is the body of record writes.
type recordInput struct {
	Fields map[string]any `json:"fields"`
}

// handleCreateRecord handles POST /v1/records/{kind}.
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var in recordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rec, err := s.createRecord(r.Context(), r.PathValue("kind"), in.Fields)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// handleGetRecord handles GET /v1/records/{kind}/{id}.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.getRecord(r.Context(), r.PathValue("kind"), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handlePutRecord handles PUT /v1/records/{kind}/{id}.
func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	var in recordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rec, created, err := s.putRecord(r.Context(), r.PathValue("kind"), r.PathValue("id"), in.Fields)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	writeJSON(w, code, rec)
}

// handleDeleteRecord handles DELETE /v1/records/{kind}/{id}.
func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.deleteRecord(r.Context(), r.PathValue("kind"), r.PathValue("id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleVerifyLawyer handles POST /v1/lawyers/{id}/verify.
func (s *Server) handleVerifyLawyer(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	rec, err := s.verifyLawyer(r.Context(), r.PathValue("id"), in.Action)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"action": in.Action, "lawyer": rec})
}

// handleDashboard handles GET /v1/dashboards/{role}.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.dashboard(r.Context(), r.PathValue("role"), q.Get(paramTab), model.ParseCriteria(q, paramTab))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleSchema handles GET /v1/schemas/{kind}.
func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r.PathValue("kind"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SchemaFor(kind))
}

// writeServiceError maps an error from a Server operation to a response.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var ie inputError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	default:
		s.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the underlying writer so event streams keep working.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// LoggingMiddleware logs the method, path, status and duration of every
// request.
func LoggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
