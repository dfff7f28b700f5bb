package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

type TokenParser interface {
	ParseToken(token string) (domain.Actor, error)
}

// Authenticate resolves the bearer token into the request's actor.
func Authenticate(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			failure(c, http.StatusUnauthorized, codeUnauthorized, "missing bearer token")
			return
		}

		actor, err := parser.ParseToken(strings.TrimSpace(token))
		if err != nil {
			failure(c, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// AdminOnly rejects actors without the admin role. It must run after Authenticate.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !actorFrom(c).IsAdmin() {
			failure(c, http.StatusForbidden, domain.CodeForbidden, "admin role required")
			return
		}
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}
