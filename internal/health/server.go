// Package health serves liveness, readiness and metrics endpoints for the
// scheduled recomputation service.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/run-expectancy/internal/scheduler"
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// RunStatusProvider reports the outcome of the latest scheduled run.
type RunStatusProvider interface {
	LastRun() (scheduler.RunStatus, bool)
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string               `json:"status"`
	Service   string               `json:"service"`
	Timestamp string               `json:"timestamp,omitempty"`
	Version   string               `json:"version,omitempty"`
	LastRun   *scheduler.RunStatus `json:"last_run,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName    string
	Version        string
	Port           int
	Logger         *logrus.Logger
	DB             DatabasePinger
	Runs           RunStatusProvider
	MetricsPath    string
	MetricsHandler http.Handler
}

// Server is a lightweight HTTP server for health check endpoints.
type Server struct {
	cfg    Config
	server *http.Server
	mu     sync.RWMutex
	ready  bool
}

// NewServer creates a new health check server.
func NewServer(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
		cfg.Logger.SetLevel(logrus.PanicLevel)
	}
	return &Server{cfg: cfg}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Handler returns the endpoint mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	if s.cfg.MetricsHandler != nil {
		mux.Handle(s.cfg.MetricsPath, s.cfg.MetricsHandler)
	}
	return mux
}

// Start starts the server in the background and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.cfg.Logger.WithFields(logrus.Fields{
			"port":    s.cfg.Port,
			"service": s.cfg.ServiceName,
		}).Info("Health check server starting")

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.cfg.Logger.WithError(err).Error("Health check server error")
		}
	}()

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(); err != nil {
			s.cfg.Logger.WithError(err).Warn("Health check server shutdown failed")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the health check server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.cfg.Logger.Info("Health check server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Service:   s.cfg.ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.cfg.Version,
	}
	if s.cfg.Runs != nil {
		if status, ok := s.cfg.Runs.LastRun(); ok {
			response.LastRun = &status
		}
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: s.cfg.ServiceName})
}

// handleReady checks the ready flag, the database and the last run.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if s.cfg.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.cfg.DB.Ping(ctx); err != nil {
			allHealthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	if s.cfg.Runs != nil {
		status, ok := s.cfg.Runs.LastRun()
		switch {
		case !ok:
			checks["last_run"] = "pending"
		case status.OK():
			checks["last_run"] = "ok"
		default:
			allHealthy = false
			checks["last_run"] = "error: " + status.Err
		}
	}

	response := ReadyResponse{
		Service:  s.cfg.ServiceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	if allHealthy {
		response.Status = "ok"
		writeJSON(w, http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	writeJSON(w, http.StatusServiceUnavailable, response)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
