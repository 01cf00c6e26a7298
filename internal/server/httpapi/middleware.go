package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gripgate/internal/common"
	"gripgate/internal/server/auth"
	"gripgate/internal/server/ratelimit"
)

// context key the auth middleware stores the resolved user id under
const ctxUserIDKey = "userID"

func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && s.originAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
			c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (s *HTTPServer) originAllowed(origin string) bool {
	if len(s.allowedOrigins) == 0 {
		return true
	}
	for _, o := range s.allowedOrigins {
		if strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// authMiddleware resolves the caller from a Bearer token. Identity fails
// closed: a missing, malformed or expired token stops the request with the
// endpoint's own unauthorized body.
func (s *HTTPServer) authMiddleware(unauthorizedBody gin.H) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		userID, err := auth.VerifyToken(token, s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, unauthorizedBody)
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

// rateLimitMiddleware checks the per-user and per-IP windows. Runs after
// auth so the user scope counts verified identities, not raw tokens.
func (s *HTTPServer) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil {
			c.Next()
			return
		}

		checks := []struct {
			scope    string
			identity string
		}{
			{ratelimit.ScopeUser, c.GetString(ctxUserIDKey)},
			{ratelimit.ScopeIP, c.ClientIP()},
		}

		for _, chk := range checks {
			if chk.identity == "" {
				continue
			}
			d := s.limiter.Allow(c.Request.Context(), chk.scope, chk.identity)
			if d.Allowed {
				continue
			}
			retryAfter := int(d.RetryAfter / time.Second)
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "rate_limited",
				"retryAfter": retryAfter,
			})
			return
		}

		c.Next()
	}
}

// timeoutMiddleware bounds each request's domain work.
func (s *HTTPServer) timeoutMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.requestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requestLogMiddleware emits one structured line per request. User ids are
// hashed before logging; the raw id never reaches the log stream.
func (s *HTTPServer) requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if userID := c.GetString(ctxUserIDKey); userID != "" {
			args = append(args, "user", common.HashUserID(userID))
		}
		s.logger.Info(c.Request.Context(), "request finished", args...)
	}
}
