package http

import (
	"net/http"
	"strings"

	"newsroom/internal/domain"
	"newsroom/internal/pipeline"

	"github.com/gin-gonic/gin"
)

const (
	identityContextKey = "identity"
	requestBagKey      = "request_bag"
)

// guard adapts a stage pipeline to gin. Stages run against a transport-
// agnostic request; a terminating stage writes its response and aborts, a
// clean run exposes the caller identity and the accumulated request context to
// the handler.
func (s *Server) guard(stages ...pipeline.Stage) gin.HandlerFunc {
	pl := pipeline.New(stages...)
	return func(c *gin.Context) {
		req := requestFromGin(c)
		rc, resp := pl.Run(c.Request.Context(), req)
		if resp != nil {
			c.AbortWithStatusJSON(resp.Status, errorResponse{Code: resp.Code, Message: resp.Message})
			return
		}
		if req.Identity != nil {
			c.Set(identityContextKey, req.Identity)
		}
		c.Set(requestBagKey, rc)
		c.Next()
	}
}

func requestFromGin(c *gin.Context) *pipeline.Request {
	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}
	token := extractBearerToken(c.GetHeader("Authorization"))
	// The allow-list matches the raw request path, not the route pattern.
	return pipeline.NewRequest(c.Request.Method, c.Request.URL.Path, token, params)
}

func extractBearerToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(value), "bearer ") {
		return ""
	}
	return strings.TrimSpace(value[len("bearer "):])
}

func callerIdentity(c *gin.Context) (*domain.User, bool) {
	raw, ok := c.Get(identityContextKey)
	if !ok {
		return nil, false
	}
	user, ok := raw.(*domain.User)
	return user, ok
}

func requestBag(c *gin.Context) (*domain.RequestContext, bool) {
	raw, ok := c.Get(requestBagKey)
	if !ok {
		return nil, false
	}
	rc, ok := raw.(*domain.RequestContext)
	return rc, ok
}

func (s *Server) loginThrottle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter == nil || s.cfg.LoginRateLimit <= 0 {
			c.Next()
			return
		}
		decision, err := s.limiter.Allow(c.Request.Context(), "login:"+c.ClientIP(), s.cfg.LoginRateLimit, s.cfg.LoginRateWindow())
		if err != nil {
			// Limiter trouble must not lock everyone out of login.
			c.Next()
			return
		}
		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Code: "RATE_LIMITED", Message: "Too many login attempts."})
			return
		}
		c.Next()
	}
}
