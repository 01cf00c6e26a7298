// Package httpapi exposes the gating operations over HTTP JSON. It owns the
// router, the middleware chain (CORS, identity, rate limiting, request
// logging) and the translation of service sentinels into status codes.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gripgate/internal/logging"
	"gripgate/internal/server/ratelimit"
	"gripgate/internal/server/services"
)

// Gater is the decision engine surface the handlers need.
type Gater interface {
	CheckAccess(ctx context.Context, userID, stepID string) (*services.AccessDecision, error)
	CompleteStep(ctx context.Context, userID, stepID string) (*services.CompletionResult, error)
}

type HTTPServer struct {
	address        string
	gating         Gater
	limiter        *ratelimit.Limiter
	logger         logging.Logger
	jwtSecret      []byte
	allowedOrigins []string
	requestTimeout time.Duration
}

// NewHTTPServer builds the server. origins is the comma-separated CORS
// allow-list; empty admits any origin (development posture).
func NewHTTPServer(a string, l logging.Logger, g Gater, lim *ratelimit.Limiter, secretKey string, origins string, requestTimeout time.Duration) (*HTTPServer, error) {
	var allowed []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed = append(allowed, o)
		}
	}

	return &HTTPServer{
		address:        a,
		logger:         l.With("module", "http_server"),
		gating:         g,
		limiter:        lim,
		jwtSecret:      []byte(secretKey),
		allowedOrigins: allowed,
		requestTimeout: requestTimeout,
	}, nil
}

// Router assembles the middleware chain and routes.
func (s *HTTPServer) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.corsMiddleware())

	r.GET("/health", s.health)

	v1 := r.Group("/v1/gating")
	v1.Use(s.requestLogMiddleware())
	v1.Use(s.timeoutMiddleware())

	// The two operations answer an unauthenticated caller differently:
	// visibility checks degrade to a denial verdict, mutations refuse.
	v1.POST("/check-step-access",
		s.authMiddleware(gin.H{"allowed": false, "reason": "authRequired"}),
		s.rateLimitMiddleware(),
		s.checkStepAccess)
	v1.POST("/step-complete",
		s.authMiddleware(gin.H{"error": "unauthorized"}),
		s.rateLimitMiddleware(),
		s.stepComplete)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
