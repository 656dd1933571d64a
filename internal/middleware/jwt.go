package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/luvi2001/yfcapp/internal/logger"
	"github.com/luvi2001/yfcapp/internal/model"
)

const identityKey = "identity"

// Resolver turns a bearer token into the caller and can mint a fresh token.
type Resolver interface {
	Resolve(ctx context.Context, token string) (model.Identity, time.Time, error)
	Issue(id model.Identity) (string, error)
}

// JWTAuth rejects requests without a valid bearer token. Tokens expiring
// within renewWithin get a replacement in the X-New-Token header.
func JWTAuth(r Resolver, renewWithin time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		id, exp, err := r.Resolve(c.Request.Context(), strings.TrimSpace(auth[7:]))
		if err != nil {
			logger.Ctx(c.Request.Context()).Warn("auth.reject", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(identityKey, id)

		if !exp.IsZero() && time.Until(exp) < renewWithin {
			if tok, err := r.Issue(id); err == nil {
				c.Header("X-New-Token", tok)
			}
		}

		c.Next()
	}
}

// RequireRole lets through only callers holding role. Must run after JWTAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, ok := IdentityFrom(c); !ok || id.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}
