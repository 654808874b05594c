// Package server provides the HTTP REST API for Jobtune.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/cache"
	"github.com/Haloween-arch/Jobtune/internal/config"
	"github.com/Haloween-arch/Jobtune/internal/logger"
	"github.com/Haloween-arch/Jobtune/internal/metrics"
	"github.com/Haloween-arch/Jobtune/internal/server/ratelimit"
	"github.com/Haloween-arch/Jobtune/internal/types"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 30 * time.Second

// JobMatcher ranks job postings against a candidate's skills.
// DatasetVersion identifies the snapshot Match reads; results are only
// cached when it reports ok.
type JobMatcher interface {
	Match(ctx context.Context, skills []string, experience int) []types.JobMatch
	DatasetVersion(ctx context.Context) (string, bool)
}

// CareerRecommender ranks career paths for a skill list
type CareerRecommender interface {
	Recommend(skills []string) types.CareerReport
}

// Deps are the collaborators the handlers delegate to.
// Cache and Logger are optional.
type Deps struct {
	Matcher     JobMatcher
	Recommender CareerRecommender
	Cache       *cache.Cache
	Logger      *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	log            *zap.Logger
	rateLimiter    *ratelimit.Limiter
	matcher        JobMatcher
	recommender    CareerRecommender
	cache          *cache.Cache
	uploadDir      string
	maxUploadBytes int64
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config is required")
	}
	if deps.Matcher == nil || deps.Recommender == nil {
		return nil, errors.New("server requires a job matcher and a career recommender")
	}

	s := &Server{
		log:            logger.Component(deps.Logger, "server"),
		matcher:        deps.Matcher,
		recommender:    deps.Recommender,
		cache:          deps.Cache,
		uploadDir:      cfg.Server.UploadDir,
		maxUploadBytes: cfg.Server.MaxUploadBytes,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.NewConfig(ratelimit.Settings{
		Enabled:           cfg.RateLimit.Enabled,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		Burst:             cfg.RateLimit.Burst,
		Whitelist:         cfg.RateLimit.Whitelist,
		Blacklist:         cfg.RateLimit.Blacklist,
	}))

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /resume/upload", s.handleUploadResume)
	mux.HandleFunc("POST /jobs/recommend", s.handleRecommendJobs)
	mux.HandleFunc("POST /ats/score", s.handleATSScore)
	mux.HandleFunc("POST /ats/apply-fixes", s.handleApplyFixes)
	mux.HandleFunc("POST /ats/export-pdf", s.handleExportPDF)
	mux.HandleFunc("POST /career/recommend", s.handleCareerRecommend)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// InvalidateMatches drops cached job matches. Entries are keyed by dataset
// version so stale ones are never served; clearing after a refresh frees them.
func (s *Server) InvalidateMatches() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.cache.Clear(ctx); err != nil {
		s.log.Warn("failed to clear match cache", zap.Error(err))
		return
	}
	s.log.Debug("match cache cleared")
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging tags each request with an ID, logs it and records metrics
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.log.Info("request completed",
			zap.String(logger.FieldRequestID, requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
		)
	})
}

// handleRoot confirms the API is reachable
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "API is running successfully"})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"detail": message})
}

// writeError maps err to a status and writes it. Server-side failures are logged.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.errorResponse(w, status, errorDetail(err))
}

// decodeJSON reads a JSON request body into v
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"detail":    "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
