package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/garzaro/uniformes-bff/internal/domain/entity"
	domainRepo "github.com/garzaro/uniformes-bff/internal/domain/repository"
)

type sessionStateRepository struct {
	db *gorm.DB
}

// NewSessionStateRepository creates a new session state repository
func NewSessionStateRepository(db *gorm.DB) domainRepo.SessionStateRepository {
	return &sessionStateRepository{db: db}
}

func (r *sessionStateRepository) Get(ctx context.Context, sessionKey, storeKey string) (*entity.SessionState, error) {
	var state entity.SessionState
	err := r.db.WithContext(ctx).
		Where("session_key = ? AND store_key = ?", sessionKey, storeKey).
		First(&state).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *sessionStateRepository) Put(ctx context.Context, sessionKey, storeKey, payload string) error {
	state := entity.SessionState{
		SessionKey: sessionKey,
		StoreKey:   storeKey,
		Payload:    payload,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_key"}, {Name: "store_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&state).Error
}

func (r *sessionStateRepository) Delete(ctx context.Context, sessionKey, storeKey string) error {
	return r.db.WithContext(ctx).
		Where("session_key = ? AND store_key = ?", sessionKey, storeKey).
		Delete(&entity.SessionState{}).Error
}

func (r *sessionStateRepository) DeleteSession(ctx context.Context, sessionKey string) error {
	return r.db.WithContext(ctx).
		Where("session_key = ?", sessionKey).
		Delete(&entity.SessionState{}).Error
}
