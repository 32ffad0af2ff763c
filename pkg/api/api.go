// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                    liveness probe
//	POST   /v1/layouts                 compute and store a layout (body: pipeline.Options)
//	GET    /v1/layouts                 list stored layouts, newest first (?limit=N)
//	GET    /v1/layouts/{id}            fetch a stored layout
//	GET    /v1/layouts/{id}/export     export a stored layout (?format=json|csv)
//	DELETE /v1/layouts/{id}            delete a stored layout
//
// Errors are returned as {"code": "...", "message": "..."} with a status
// derived from the pkg/errors code.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/squarify/pkg/buildinfo"
	errs "github.com/matzehuels/squarify/pkg/errors"
	"github.com/matzehuels/squarify/pkg/observability"
	"github.com/matzehuels/squarify/pkg/pipeline"
	"github.com/matzehuels/squarify/pkg/storage"
)

// MaxBodyBytes bounds the size of a layout request body.
const MaxBodyBytes = 8 << 20

// Server handles API requests.
type Server struct {
	runner *pipeline.Runner
	store  storage.Store
	logger *log.Logger
	router chi.Router
}

// New builds a Server on top of runner and store.
func New(runner *pipeline.Runner, store storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, store: store, logger: logger}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
	})

	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.createLayout)
		r.Get("/", s.listLayouts)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getLayout)
			r.Delete("/", s.deleteLayout)
			r.Get("/export", s.exportLayout)
		})
	})
	return r
}

// observe reports every request to the registered HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func (s *Server) createLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	l, err := s.runner.ComputeLayout(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Save(r.Context(), &l); err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Debug("stored layout", "id", l.ID, "rects", len(l.Rects))
	w.Header().Set("Location", "/v1/layouts/"+l.ID)
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) listLayouts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	layouts, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layouts)
}

func (s *Server) getLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := storage.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}
	l, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) exportLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := storage.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	l, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Export(r.Context(), l, pipeline.Options{Formats: []string{format}})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) deleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := storage.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatCSV:  "text/csv; charset=utf-8",
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeNotFound), errs.Is(err, errs.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	resp := errorResponse{Code: errs.GetCode(err), Message: errs.UserMessage(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		resp = errorResponse{Code: errs.ErrCodeInternal, Message: "internal error"}
	}
	if status == http.StatusRequestEntityTooLarge {
		resp.Code = errs.ErrCodeInvalidInput
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
