package services

import (
	"context"
	"mime/multipart"
	"path"
	"time"

	"ecodispose_backend/internal/auth"
	"ecodispose_backend/internal/email"
	"ecodispose_backend/internal/logger"
	"ecodispose_backend/internal/models"
	"ecodispose_backend/internal/repositories"
	"ecodispose_backend/internal/services/dto"
	"ecodispose_backend/internal/storage"
	"ecodispose_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DeviceService interface {
	// List returns all devices for staff, the actor's own otherwise
	List(db *gorm.DB, actor auth.Actor) ([]dto.DeviceResponse, error)

	// Add stores the image and creates the device for the actor. Staff
	// accounts are rejected; they review devices, they do not submit them.
	Add(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.AddDeviceRequest, image *multipart.FileHeader) (*dto.DeviceResponse, error)

	// Update patches condition/status/price/notes on an owned device, or
	// any device when the actor is staff
	Update(db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateDeviceRequest) (*dto.DeviceResponse, error)

	// Delete removes an owned device and its stored image. Ownership is
	// required; staff get no bypass here.
	Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
}

type deviceService struct {
	deviceRepo    repositories.DeviceRepository
	userRepo      repositories.UserRepository
	storage       storage.Storage
	emailProvider email.Provider
}

func NewDeviceService(
	deviceRepo repositories.DeviceRepository,
	userRepo repositories.UserRepository,
	storageInstance storage.Storage,
	emailProvider email.Provider,
) DeviceService {
	return &deviceService{
		deviceRepo:    deviceRepo,
		userRepo:      userRepo,
		storage:       storageInstance,
		emailProvider: emailProvider,
	}
}

func (s *deviceService) List(db *gorm.DB, actor auth.Actor) ([]dto.DeviceResponse, error) {
	var (
		devices []models.Device
		err     error
	)

	if actor.IsAdmin {
		devices, err = s.deviceRepo.FindAll(db)
	} else {
		devices, err = s.deviceRepo.FindByUserID(db, actor.UserID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewDeviceResponses(devices), nil
}

func (s *deviceService) Add(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.AddDeviceRequest, image *multipart.FileHeader) (*dto.DeviceResponse, error) {
	if actor.IsAdmin {
		return nil, apperrors.ErrAdminCannotSubmit
	}

	if image == nil {
		return nil, apperrors.NewBadRequestError("Missing required fields: name, type, defects, userDescription, or image")
	}
	if !storage.AllowedExtension(image.Filename) {
		return nil, apperrors.ErrInvalidImageFile
	}

	imageURL, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	userID := actor.UserID
	device := &models.Device{
		Name:            req.Name,
		Type:            req.Type,
		Defects:         req.Defects,
		UserDescription: req.UserDescription,
		Status:          models.StatusWaiting,
		ImageURL:        imageURL,
		UploadDate:      time.Now(),
		UserID:          &userID,
	}

	if err := s.deviceRepo.Create(db, device); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewDeviceResponse(device)
	return &resp, nil
}

func (s *deviceService) Update(db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateDeviceRequest) (*dto.DeviceResponse, error) {
	device, err := s.deviceRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDeviceNotFound) {
			return nil, apperrors.ErrDeviceNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Staff may update any device; everyone else only their own.
	if !actor.IsAdmin && (device.UserID == nil || *device.UserID != actor.UserID) {
		return nil, apperrors.ErrNotDeviceOwner
	}

	// Validate enums before touching the row so a bad patch leaves the
	// device unmodified.
	var (
		condition *models.DeviceCondition
		status    *models.DeviceStatus
	)
	if req.Condition != nil {
		parsed, err := models.ParseDeviceCondition(*req.Condition)
		if err != nil {
			return nil, apperrors.ErrInvalidDeviceEnum
		}
		condition = &parsed
	}
	if req.Status != nil {
		parsed, err := models.ParseDeviceStatus(*req.Status)
		if err != nil {
			return nil, apperrors.ErrInvalidDeviceEnum
		}
		status = &parsed
	}

	previousStatus := device.Status
	if condition != nil {
		device.Condition = *condition
	}
	if status != nil {
		device.Status = *status
	}
	if req.EstimatedPrice != nil {
		device.EstimatedPrice = float64(*req.EstimatedPrice)
	}
	if req.AdminNotes != nil {
		device.AdminNotes = *req.AdminNotes
	}

	if err := s.deviceRepo.Update(db, device); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if status != nil && *status != previousStatus {
		s.notifyOwnerOfDecision(db, device)
	}

	resp := dto.NewDeviceResponse(device)
	return &resp, nil
}

func (s *deviceService) Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	device, err := s.deviceRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDeviceNotFound) {
			return apperrors.ErrDeviceNotFound
		}
		return apperrors.InternalError(err)
	}

	if device.UserID == nil || *device.UserID != actor.UserID {
		return apperrors.ErrOnlyOwnerMayDelete
	}

	if err := s.deviceRepo.Delete(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrDeviceNotFound) {
			return apperrors.ErrDeviceNotFound
		}
		return apperrors.InternalError(err)
	}

	// The stored image is removed after the row; a missing file is fine.
	if device.ImageURL != "" {
		if err := s.storage.Delete(ctx, path.Base(device.ImageURL)); err != nil {
			logger.CtxWarn(ctx, "failed to delete device image",
				"device_id", id, "error", err.Error())
		}
	}

	return nil
}

func (s *deviceService) saveImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	name, err := storage.RandomFileName(image.Filename)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	src, err := image.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	if err := s.storage.Save(ctx, name, src, image.Header.Get("Content-Type")); err != nil {
		return "", apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, name)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}

// notifyOwnerOfDecision emails the owner about accepted/rejected
// decisions. Best effort: failures are logged, never surfaced.
func (s *deviceService) notifyOwnerOfDecision(db *gorm.DB, device *models.Device) {
	if s.emailProvider == nil || device.UserID == nil {
		return
	}
	if device.Status != models.StatusAccepted && device.Status != models.StatusRejected {
		return
	}

	owner, err := s.userRepo.FindByID(db, *device.UserID)
	if err != nil {
		logger.Warn("device decision notification skipped: owner lookup failed",
			"device_id", device.ID, "error", err.Error())
		return
	}

	err = s.emailProvider.SendDeviceReviewed(owner.Email, email.DeviceReviewedData{
		FirstName:      owner.FirstName,
		DeviceName:     device.Name,
		Status:         string(device.Status),
		EstimatedPrice: device.EstimatedPrice,
	})
	if err != nil {
		logger.Warn("failed to send device decision notification",
			"device_id", device.ID, "error", err.Error())
	}
}
