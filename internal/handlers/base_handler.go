package handlers

import (
	"fmt"

	"ecodispose_backend/internal/auth"
	"ecodispose_backend/internal/logger"
	"ecodispose_backend/internal/middleware"
	"ecodispose_backend/internal/validator"
	"ecodispose_backend/pkg/apperrors"
	"ecodispose_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB extracts the request-scoped *gorm.DB (pool or test transaction)
// from the gin context. DBMiddleware must have run.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// BindAndValidate binds form or JSON input (by content type) and runs
// struct validation. Writes the error response itself on failure.
func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	return h.validateStruct(c, obj)
}

// ValidateStruct validates an already-populated object (used when the
// payload arrives as a JSON string inside a multipart form).
func (h *BaseHandler) ValidateStruct(c *gin.Context, obj interface{}) bool {
	return h.validateStruct(c, obj)
}

func (h *BaseHandler) validateStruct(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError converts a service error into an HTTP response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// GetActor returns the authenticated actor, writing a 401 when the
// session middleware did not run or did not authenticate.
func (h *BaseHandler) GetActor(c *gin.Context) (auth.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: actor not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrNotAllowed)
		return auth.Actor{}, false
	}
	return actor, true
}
