package repositories

import (
	"errors"
	"time"

	"ecodispose_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists opaque login sessions.
type SessionRepository interface {
	// Create inserts a new session row
	Create(db *gorm.DB, session *models.Session) error

	// FindByToken resolves an opaque token to its session row
	FindByToken(db *gorm.DB, token string) (*models.Session, error)

	// DeleteByToken removes one session (logout)
	DeleteByToken(db *gorm.DB, token string) error

	// DeleteByUserID removes every session of a user
	DeleteByUserID(db *gorm.DB, userID string) error

	// CleanExpired removes sessions past their expiry
	CleanExpired(db *gorm.DB) error
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *models.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByToken(db *gorm.DB, token string) (*models.Session, error) {
	var session models.Session
	if err := db.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByToken(db *gorm.DB, token string) error {
	result := db.Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepository) DeleteByUserID(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

func (r *sessionRepository) CleanExpired(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
