package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// actorKey is the key used to store the acting principal in the Gin context.
const actorKey = contextKey("actor")

// ActorHeader names the request header carrying the actor recorded in audit fields.
const ActorHeader = "X-Actor"

// DefaultActor is recorded when a request carries no actor header.
const DefaultActor = "api"

// ActorMiddleware copies the actor header into the Gin context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorHeader))
		if actor == "" {
			actor = DefaultActor
		}
		c.Set(string(actorKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the actor from the Gin context, falling back to
// DefaultActor when the middleware did not run.
func GetActorFromContext(c *gin.Context) string {
	if v, ok := c.Get(string(actorKey)); ok {
		if actor, ok := v.(string); ok && actor != "" {
			return actor
		}
	}
	return DefaultActor
}
