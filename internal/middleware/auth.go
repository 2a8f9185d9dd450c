package middleware

import (
	"net/http"
	"strings"

	"ecodispose_backend/internal/auth"
	"ecodispose_backend/internal/logger"
	"ecodispose_backend/internal/services"
	"ecodispose_backend/pkg/apperrors"
	"ecodispose_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	actorKey        = "actor"
	sessionTokenKey = "sessionToken"
)

// SessionMiddleware resolves the opaque session token (cookie first, then
// Authorization: Bearer) into an explicit auth.Actor. Requests without a
// valid session are rejected with 401 before any handler logic runs.
func SessionMiddleware(authService services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractSessionToken(c, cookieName)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperrors.ErrorResponse{Error: apperrors.ErrNotAllowed})
			return
		}

		db, ok := c.Get(string(contextkeys.DBContextKey))
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				apperrors.ErrorResponse{Error: apperrors.InternalError(nil)})
			return
		}

		actor, err := authService.ResolveSession(db.(*gorm.DB), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				apperrors.ErrorResponse{Error: apperrors.ErrNotAllowed})
			return
		}

		// Downstream log lines carry the user id from here on.
		ctx := logger.WithUserID(c.Request.Context(), actor.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Set(actorKey, *actor)
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

func extractSessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetActor returns the authentication context set by SessionMiddleware.
func GetActor(c *gin.Context) (auth.Actor, bool) {
	val, exists := c.Get(actorKey)
	if !exists {
		return auth.Actor{}, false
	}
	actor, ok := val.(auth.Actor)
	return actor, ok
}

// GetSessionToken returns the raw token of the current session.
func GetSessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}
