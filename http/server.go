package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/brandctx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Default and maximum page sizes for insight listings.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Server exposes the pipeline and stored insights over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address, e.g. ":8000".
	Addr string

	Analyzer brandctx.Analyzer

	// Insights serves the history endpoints; they are not mounted when nil.
	Insights brandctx.InsightService

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// Middleware is applied after the built-in request middleware, e.g. for
	// request instrumentation.
	Middleware []func(http.Handler) http.Handler

	Logger *slog.Logger
}

// NewServer returns a new Server. Fields must be set before Open or Handler.
func NewServer() *Server {
	return &Server{Logger: slog.Default()}
}

// Handler builds the router. It is called by Open and exposed for tests.
func (s *Server) Handler() http.Handler {
	if s.router != nil {
		return s.router
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  func(_ *http.Request, _ string) bool { return true },
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	for _, mw := range s.Middleware {
		r.Use(mw)
	}

	r.Get("/healthz", s.handleHealth)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	r.Post("/shopify-insights", s.handleAnalyze)
	if s.Insights != nil {
		r.Get("/insights", s.handleListInsights)
		r.Get("/insights/{id}", s.handleGetInsight)
	}

	s.router = r
	return r
}

// Open binds the listener and serves requests in the background.
func (s *Server) Open() error {
	if s.Analyzer == nil {
		return brandctx.Errorf(brandctx.EINVALID, "server analyzer required")
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type analyzeRequest struct {
	WebsiteURL string `json:"website_url"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, ok := brandctx.AbsoluteURL(req.WebsiteURL); !ok {
		s.writeDetail(w, http.StatusUnprocessableEntity, "website_url must be an absolute http(s) URL")
		return
	}

	insight, err := s.Analyzer.Analyze(r.Context(), req.WebsiteURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, insight.Context)
}

func (s *Server) handleListInsights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := brandctx.InsightFilter{Limit: DefaultListLimit}
	if v := q.Get("website_url"); v != "" {
		filter.WebsiteURL = &v
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeDetail(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = min(n, MaxListLimit)
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeDetail(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		filter.Offset = n
	}

	insights, err := s.Insights.FindInsights(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if insights == nil {
		insights = []*brandctx.Insight{}
	}
	s.writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleGetInsight(w http.ResponseWriter, r *http.Request) {
	insight, err := s.Insights.FindInsightByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, insight)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorStatusCode maps an application error to the response status.
func ErrorStatusCode(err error) int {
	switch brandctx.ErrorCode(err) {
	case brandctx.EINVALID:
		return http.StatusBadRequest
	case brandctx.EUNAVAILABLE:
		return http.StatusUnauthorized
	case brandctx.ETIMEOUT:
		return http.StatusGatewayTimeout
	case brandctx.ENOTFOUND:
		return http.StatusNotFound
	case brandctx.EUPSTREAM:
		if status := brandctx.ErrorStatus(err); status >= http.StatusBadRequest {
			return status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := ErrorStatusCode(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	s.writeDetail(w, status, brandctx.ErrorMessage(err))
}

func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("write response", "err", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
