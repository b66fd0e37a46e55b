package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lumacart/storefront/internal/identity/application"
	"github.com/lumacart/storefront/internal/rpc"
	"github.com/lumacart/storefront/pkg/logger"
)

// Session resolves the session cookie into an rpc identity for downstream
// procedures. A missing or stale cookie leaves the request anonymous; a store
// failure during resolution does too, since identity lookup must never take
// the whole surface down.
func Session(svc *application.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := svc.ResolveSession(c.Request.Context(), token)
		if err != nil {
			logger.Warn(c.Request.Context(), "session resolution failed", "error", err)
			c.Next()
			return
		}
		if user != nil {
			rpc.SetIdentity(c, &rpc.Identity{
				ID:     user.ID,
				OpenID: user.OpenID,
				Role:   rpc.Role(user.Role),
			})
		}
		c.Next()
	}
}
