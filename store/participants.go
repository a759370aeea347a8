package store

import (
	"context"
	"errors"
	"fmt"

	"fintrack-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParticipantStore implements ParticipantStore on top of Postgres.
type GormParticipantStore struct {
	db *gorm.DB
}

func NewGormParticipantStore(db *gorm.DB) *GormParticipantStore {
	return &GormParticipantStore{db: db}
}

func (s *GormParticipantStore) Upsert(ctx context.Context, p *models.Participant) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to upsert participant: %w", err)
	}
	return nil
}

func (s *GormParticipantStore) Get(ctx context.Context, id string) (*models.Participant, error) {
	var p models.Participant
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &p, nil
}

func (s *GormParticipantStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}
