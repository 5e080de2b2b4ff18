package repository

import (
	"context"

	"gorm.io/gorm"

	"consite/internal/model"
)

// SessionRepository defines auth session persistence operations. There is at
// most one row per user; callers overwrite rather than append.
type SessionRepository interface {
	Save(ctx context.Context, session *model.AuthSession) error
	FindByUser(ctx context.Context, userID uint) (*model.AuthSession, error)
	FindByToken(ctx context.Context, token string) (*model.AuthSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Save(ctx context.Context, session *model.AuthSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) FindByUser(ctx context.Context, userID uint) (*model.AuthSession, error) {
	var session model.AuthSession
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*model.AuthSession, error) {
	var session model.AuthSession
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}
