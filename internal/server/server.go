package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Options configures the HTTP server.
type Options struct {
	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string
	// TrustedProxies lists proxy IPs or CIDRs whose forwarding headers name
	// the client. Empty trusts none and keys clients on the peer address.
	TrustedProxies []string
	// RateLimit is the per-IP request rate per second; zero disables it.
	RateLimit float64
	Burst     int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is the portfolio HTTP API.
type Server struct {
	engine  *gin.Engine
	limiter *RateLimiter
	log     *slog.Logger
}

// New wires routes and middleware around fetcher.
func New(fetcher Fetcher, log *slog.Logger, opts Options) (*Server, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	engine := gin.New()
	// nil trusts no proxy; gin's default trusts every peer's forwarding headers.
	var proxies []string
	for _, p := range opts.TrustedProxies {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	if err := engine.SetTrustedProxies(proxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}
	engine.Use(gin.Recovery(), requestLogger(log), corsMiddleware(opts.AllowedOrigins))

	s := &Server{engine: engine, log: log}
	if opts.RateLimit > 0 {
		s.limiter = NewRateLimiter(opts.RateLimit, opts.Burst)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(fetcher, log, opts.Now)
	api := engine.Group("/api/github")
	if s.limiter != nil {
		api.Use(s.limiter.Middleware())
	}
	api.POST("/get-details", h.GetDetails)
	api.GET("/validate", h.ValidateUser)

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Close releases background resources.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	defer s.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("took", time.Since(start)),
		)
	}
}
