package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"ecodispose_backend/internal/auth"
	"ecodispose_backend/internal/logger"
	"ecodispose_backend/internal/models"
	"ecodispose_backend/internal/repositories"
	"ecodispose_backend/internal/services/dto"
	"ecodispose_backend/internal/storage"
	"ecodispose_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// reservedEmailDomain is the company domain; customers cannot register
// with it.
const reservedEmailDomain = "@eco-dispose.com"

type AuthService interface {
	// Register creates the address and the user in one transaction and
	// returns the serialized user
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)

	// Login verifies credentials and establishes a session
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Logout invalidates the session token server-side
	Logout(db *gorm.DB, token string) error

	// ResolveSession maps an opaque token to an authentication context;
	// expired sessions are deleted and reported as absent
	ResolveSession(db *gorm.DB, token string) (*auth.Actor, error)

	// Profile returns the actor's user with nested address and devices
	Profile(db *gorm.DB, actor auth.Actor) (*dto.UserResponse, error)

	// EditProfile applies a partial update and optionally replaces the
	// profile image
	EditProfile(ctx context.Context, db *gorm.DB, actor auth.Actor, patch *dto.EditProfileRequest, image *multipart.FileHeader) (*dto.UserResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	storage     storage.Storage
	sessionTTL  time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	storageInstance storage.Storage,
	sessionTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		storage:     storageInstance,
		sessionTTL:  sessionTTL,
	}
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if strings.HasSuffix(strings.ToLower(req.Email), reservedEmailDomain) {
		return nil, apperrors.ErrReservedEmailDomain
	}

	// Cheap pre-check; the unique index still catches concurrent inserts.
	exists, err := s.userRepo.ExistsByEmail(db, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// The address row exists before the user row and is linked inside
	// the same transaction.
	address := &models.Address{}
	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.CreateWithAddress(db, user, address); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	user.Address = *address
	resp := dto.NewUserResponse(user, false)
	return &resp, nil
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrWrongCredentials
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Message:      fmt.Sprintf("logged in as %s", user.FirstName),
		SessionToken: token,
		User:         dto.NewUserResponse(user, false),
	}, nil
}

func (s *authService) Logout(db *gorm.DB, token string) error {
	if err := s.sessionRepo.DeleteByToken(db, token); err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return apperrors.ErrNotAllowed
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) ResolveSession(db *gorm.DB, token string) (*auth.Actor, error) {
	session, err := s.sessionRepo.FindByToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrNotAllowed
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(session.ExpiresAt) {
		// Expired rows are garbage; drop on sight.
		_ = s.sessionRepo.DeleteByToken(db, token)
		return nil, apperrors.ErrNotAllowed
	}

	user, err := s.userRepo.FindByID(db, session.UserID)
	if err != nil {
		return nil, apperrors.ErrNotAllowed
	}

	return &auth.Actor{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

func (s *authService) Profile(db *gorm.DB, actor auth.Actor) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, actor.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotAllowed
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user, true)
	return &resp, nil
}

func (s *authService) EditProfile(ctx context.Context, db *gorm.DB, actor auth.Actor, patch *dto.EditProfileRequest, image *multipart.FileHeader) (*dto.UserResponse, error) {
	if patch == nil && image == nil {
		return nil, apperrors.NewBadRequestError("no data provided")
	}

	user, err := s.userRepo.FindByID(db, actor.UserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotAllowed
		}
		return nil, apperrors.InternalError(err)
	}

	if patch != nil {
		applyProfilePatch(user, patch)
	}

	if image != nil {
		imageURL, err := s.replaceProfileImage(ctx, user, image)
		if err != nil {
			return nil, err
		}
		user.ProfileImageURL = imageURL
	}

	if err := s.userRepo.Update(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrInvalidUserState
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user, false)
	return &resp, nil
}

func applyProfilePatch(user *models.User, patch *dto.EditProfileRequest) {
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Address != nil {
		if patch.Address.Street != nil {
			user.Address.Street = *patch.Address.Street
		}
		if patch.Address.Country != nil {
			user.Address.Country = *patch.Address.Country
		}
		if patch.Address.City != nil {
			user.Address.City = *patch.Address.City
		}
		if patch.Address.ZipCode != nil {
			user.Address.ZipCode = *patch.Address.ZipCode
		}
	}
}

// replaceProfileImage stores the new image and best-effort deletes the
// previous one. Returns the public URL of the stored file.
func (s *authService) replaceProfileImage(ctx context.Context, user *models.User, image *multipart.FileHeader) (string, error) {
	if !storage.AllowedExtension(image.Filename) {
		return "", apperrors.ErrInvalidImageFile
	}

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

	if user.ProfileImageURL != "" {
		if err := s.storage.Delete(ctx, path.Base(user.ProfileImageURL)); err != nil {
			logger.CtxWarn(ctx, "failed to delete previous profile image",
				"user_id", user.ID, "error", err.Error())
		}
	}

	url, err := s.storage.GetURL(ctx, name)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return url, nil
}
