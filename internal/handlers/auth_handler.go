package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"ecodispose_backend/internal/middleware"
	"ecodispose_backend/internal/services"
	"ecodispose_backend/internal/services/dto"
	"ecodispose_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService  services.AuthService
	sessionMW    gin.HandlerFunc
	cookieName   string
	cookieMaxAge int
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, sessionMW gin.HandlerFunc, cookieName string, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		BaseHandler:  base,
		authService:  authService,
		sessionMW:    sessionMW,
		cookieName:   cookieName,
		cookieMaxAge: cookieMaxAge,
	}
}

// RegisterRoutes wires the /auth group.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	protected := rg.Group("/auth")
	protected.Use(h.sessionMW)
	{
		protected.GET("/profile", h.Profile)
		protected.POST("/edit", h.Edit)
		protected.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetCookie(h.cookieName, response.SessionToken, h.cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.Profile(db, actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) Edit(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	patch, image, ok := h.readEditPayload(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.EditProfile(c.Request.Context(), db, actor, patch, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "user details updated successfully",
		"user":    user,
	})
}

// readEditPayload accepts either a multipart form ("user" JSON field plus
// optional "profileImage" file) or a plain JSON body.
func (h *AuthHandler) readEditPayload(c *gin.Context) (*dto.EditProfileRequest, *multipart.FileHeader, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		jsonData := c.PostForm("user")
		image, _ := c.FormFile("profileImage")

		if jsonData == "" && image == nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("no data provided"))
			return nil, nil, false
		}

		var patch *dto.EditProfileRequest
		if jsonData != "" {
			patch = &dto.EditProfileRequest{}
			if err := json.Unmarshal([]byte(jsonData), patch); err != nil {
				apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid user data: "+err.Error()))
				return nil, nil, false
			}
		}
		return patch, image, true
	}

	patch := &dto.EditProfileRequest{}
	if !h.BindAndValidate(c, patch) {
		return nil, nil, false
	}
	return patch, nil, true
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)

	db := h.GetDB(c)

	if err := h.authService.Logout(db, token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "logged out successfully",
	})
}
