package handlers

import (
	"encoding/json"
	"net/http"

	"ecodispose_backend/internal/services"
	"ecodispose_backend/internal/services/dto"
	"ecodispose_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	*BaseHandler
	deviceService services.DeviceService
	sessionMW     gin.HandlerFunc
}

func NewDeviceHandler(base *BaseHandler, deviceService services.DeviceService, sessionMW gin.HandlerFunc) *DeviceHandler {
	return &DeviceHandler{
		BaseHandler:   base,
		deviceService: deviceService,
		sessionMW:     sessionMW,
	}
}

// RegisterRoutes wires the /devices group. Everything requires a session.
func (h *DeviceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	devices := rg.Group("/devices")
	devices.Use(h.sessionMW)
	{
		devices.GET("/", h.List)
		devices.POST("/", h.Add)
		devices.PUT("/:id", h.Update)
		devices.DELETE("/:id", h.Delete)
	}
}

// List returns every device for staff, the caller's own otherwise.
func (h *DeviceHandler) List(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	devices, err := h.deviceService.List(db, actor)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, devices)
}

// Add submits a new device: multipart form with a "device" JSON field and
// an "image" file.
func (h *DeviceHandler) Add(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	formData := c.PostForm("device")
	if formData == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing device data"))
		return
	}

	var req dto.AddDeviceRequest
	if err := json.Unmarshal([]byte(formData), &req); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid device data: "+err.Error()))
		return
	}
	if !h.ValidateStruct(c, &req) {
		return
	}

	image, _ := c.FormFile("image")

	db := h.GetDB(c)

	device, err := h.deviceService.Add(c.Request.Context(), db, actor, &req, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Device added successfully",
		"device":  device,
	})
}

// Update patches condition/status/price/notes on a device.
func (h *DeviceHandler) Update(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")

	var req dto.UpdateDeviceRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	db := h.GetDB(c)

	device, err := h.deviceService.Update(db, actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "device updated successfully",
		"device":  device,
	})
}

// Delete removes an owned device and its stored image.
func (h *DeviceHandler) Delete(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	id := c.Param("id")

	db := h.GetDB(c)

	if err := h.deviceService.Delete(c.Request.Context(), db, actor, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Device deleted successfully",
	})
}
