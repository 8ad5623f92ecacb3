// Package server exposes the analysis engines over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"

	"ligysis/internal/config"
	"ligysis/internal/segment"
	"ligysis/internal/store"
)

// Store is the persistence the service needs; *store.Store satisfies it.
type Store interface {
	NewRun(ctx context.Context, r store.Run) (store.Run, error)
	SaveSegment(ctx context.Context, runID uuid.UUID, r segment.Result) error
}

// Options tunes the HTTP layer.
type Options struct {
	Addr           string
	MaxConns       int           // concurrent connections, 0 = unlimited
	RatePerSec     float64       // sustained requests per second on /v1, 0 = unlimited
	Burst          int           // limiter bucket size
	RateWait       time.Duration // how long a request may queue for a token
	MaxBody        int64         // request body cap in bytes
	AllowedOrigins []string
	Workers        int
	Strict         bool
}

// DefaultOptions returns the stock service settings.
func DefaultOptions() Options {
	return Options{
		Addr:           ":8001",
		MaxConns:       256,
		RatePerSec:     10,
		Burst:          20,
		RateWait:       2 * time.Second,
		MaxBody:        64 << 20,
		AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		Workers:        0,
	}
}

// Server holds the router and its dependencies.
type Server struct {
	cfg     config.Config
	opt     Options
	store   Store
	limiter *rate.Limiter
	router  chi.Router
}

// New builds a Server. st may be nil to disable persistence.
func New(cfg config.Config, opt Options, st Store) *Server {
	s := &Server{cfg: cfg, opt: opt, store: st}
	if opt.RatePerSec > 0 {
		burst := opt.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opt.RatePerSec), burst)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opt.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Analysis-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.throttle)
		r.Post("/sites", s.sites)
		r.Post("/conservation", s.conservation)
		r.Post("/segments", s.segments)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// throttle rejects requests that cannot get a limiter token within RateWait.
func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.admit(r.Context()) {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) admit(ctx context.Context) bool {
	if s.opt.RateWait <= 0 {
		return s.limiter.Allow()
	}
	ctx, cancel := context.WithTimeout(ctx, s.opt.RateWait)
	defer cancel()
	return s.limiter.Wait(ctx) == nil
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.opt.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.opt.MaxConns)
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// ListenAndServe listens on Options.Addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opt.Addr)
	if err != nil {
		return err
	}
	log.Printf("listening on %s (max %d connections)", ln.Addr(), s.opt.MaxConns)
	return s.Serve(ctx, ln)
}
