package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"outgo/internal/cache"
	"outgo/internal/core"
	"outgo/internal/notify"
	"outgo/internal/repo"
)

type Server struct {
	http.Server
	expenses   *repo.ExpenseRepo
	categories *repo.CategoryRepo
	budget     *repo.BudgetRepo
	publisher  notify.Publisher

	// Dashboard snapshots are expensive relative to everything else;
	// they are cached per reference date and recomputed after mutations.
	snapshots *cache.LRUCache[core.Snapshot]
	flights   singleflight.Group
	sweeper   *cache.Sweeper

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer wires routes, caching and rate limiting, returning a
// ready-to-run http.Server.
func NewServer(addr string, expenses *repo.ExpenseRepo, categories *repo.CategoryRepo, budget *repo.BudgetRepo, publisher notify.Publisher, cacheSize int, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		expenses:    expenses,
		categories:  categories,
		budget:      budget,
		publisher:   publisher,
		snapshots:   cache.NewLRUCache[core.Snapshot](cacheSize, cacheTTL),
		rateLimiter: newRateLimiter(),
	}

	s.sweeper = cache.NewSweeper(s.snapshots)
	s.sweeper.Start(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/dashboard", s.withCommon(s.handleDashboard))

	mux.HandleFunc("GET /api/expenses", s.withCommon(s.handleListExpenses))
	mux.HandleFunc("POST /api/expenses", s.withCommon(s.handleCreateExpense))
	mux.HandleFunc("POST /api/expenses/samples", s.withCommon(s.handleSeedSamples))
	mux.HandleFunc("GET /api/expenses/{id}", s.withCommon(s.handleGetExpense))
	mux.HandleFunc("PUT /api/expenses/{id}", s.withCommon(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.withCommon(s.handleDeleteExpense))

	mux.HandleFunc("GET /api/categories", s.withCommon(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withCommon(s.handleCreateCategory))
	mux.HandleFunc("GET /api/categories/{id}", s.withCommon(s.handleGetCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.withCommon(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withCommon(s.handleDeleteCategory))

	mux.HandleFunc("GET /api/budget", s.withCommon(s.handleGetBudget))
	mux.HandleFunc("PUT /api/budget", s.withCommon(s.handleSetBudget))

	return s
}

// Shutdown stops the background routines before the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.sweeper.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// invalidate drops cached snapshots and broadcasts which collection
// changed. Publish failures are logged, never surfaced: the mutation
// already succeeded.
func (s *Server) invalidate(ctx context.Context, entity string) {
	s.snapshots.Purge()
	if err := s.publisher.EntityChanged(ctx, entity); err != nil {
		slog.WarnContext(ctx, "Change event publish failed", "entity", entity, "error", err)
	}
}

// withCommon adds security headers, rate limiting on mutations, and
// request logging.
func (s *Server) withCommon(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Storage must answer before the server reports ready.
	if _, err := s.categories.List(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("storage unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
