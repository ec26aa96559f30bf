package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lazypower/growthlog/internal/logger"
	"github.com/lazypower/growthlog/internal/service"
)

// Server is the growthlog HTTP API server.
type Server struct {
	reports *service.Reports
	log     *logger.Logger
	router  chi.Router
	version string
	started time.Time
	now     func() time.Time
}

// New creates a new Server over the given report service.
func New(reports *service.Reports, log *logger.Logger, version string) *Server {
	s := &Server{
		reports: reports,
		log:     log,
		version: version,
		started: time.Now(),
		now:     time.Now,
	}
	s.routes()
	return s
}

// SetClock replaces the clock reports are computed against.
func (s *Server) SetClock(now func() time.Time) {
	s.now = now
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/users/{userID}/reports", s.handleFeedbackList)
		r.Get("/users/{userID}/reports/details", s.handlePeriodDetail)

		r.Post("/users/{userID}/goals", s.handleCreateGoal)
		r.Get("/users/{userID}/goals/peers", s.handlePeerGoals)
		r.Put("/users/{userID}/goals/{goalID}", s.handleUpdateGoal)
		r.Delete("/users/{userID}/goals/{goalID}", s.handleDeleteGoal)
	})

	s.router = r
}

// requestLogger tags each request with an id and logs it once served.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, id)
		w.Header().Set(logger.RequestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		s.log.WithRequest(r).
			WithField("status", ww.Status()).
			WithField("bytes", ww.BytesWritten()).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Info("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.reports.DB.PingContext(r.Context()); err != nil {
		dbOK = false
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.reports.DB.Path,
		"policy":  s.reports.Engine.Policy.Name(),
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
