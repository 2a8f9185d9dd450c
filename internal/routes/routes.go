package routes

import (
	"net/http"

	"ecodispose_backend/internal/handlers"
	"ecodispose_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all HTTP routes at the router root: the
// original API lives directly under /auth, /devices and /files.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	root := ginRouter.Group("")
	{
		appHandlers.AuthHandler.RegisterRoutes(root)
		appHandlers.DeviceHandler.RegisterRoutes(root)
		appHandlers.FileHandler.RegisterRoutes(root)
	}

	// Process-wide fallbacks keep unhandled routing failures in the
	// same JSON error shape as everything else.
	ginRouter.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.ErrorResponse{
			Error: apperrors.NewNotFoundError("Route not found"),
		})
	})
}
