package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/glucotrack/internal/database"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"gorm.io/gorm"
)

type GlucoseService struct {
	db *gorm.DB
}

func NewGlucoseService(db *gorm.DB) *GlucoseService {
	return &GlucoseService{db: db}
}

// GlucoseLogInput carries the fields of a new glucose reading. A zero
// Timestamp means "now".
type GlucoseLogInput struct {
	Timestamp time.Time
	MealType  database.MealType
	Glycemia  float64 // in g/L
	Dosage    float64 // Novorapide units
	Notes     *string
}

func (in *GlucoseLogInput) validate() error {
	if in.Glycemia <= 0 {
		return apperrors.NewValidationError("glycemia must be greater than zero")
	}
	if in.Dosage < 0 {
		return apperrors.NewValidationError("dosage must not be negative")
	}
	if !in.MealType.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown meal type %q", in.MealType))
	}
	return nil
}

// GetAll returns the user's glucose logs, most recent first.
func (s *GlucoseService) GetAll(ctx context.Context, userID string) ([]database.GlucoseLog, error) {
	var logs []database.GlucoseLog
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get glucose logs: %w", err)
	}
	return logs, nil
}

// Add persists a new glucose log for userID and returns the stored row.
func (s *GlucoseService) Add(ctx context.Context, userID string, in GlucoseLogInput) (*database.GlucoseLog, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	timestamp := in.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	log := &database.GlucoseLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: timestamp,
		MealType:  in.MealType,
		Glycemia:  in.Glycemia,
		Dosage:    in.Dosage,
		Notes:     in.Notes,
	}

	if err := s.db.WithContext(ctx).Create(log).Error; err != nil {
		return nil, fmt.Errorf("failed to create glucose log: %w", err)
	}

	return log, nil
}

// Update persists the mutable fields of the log. The write is scoped to the
// owning user, so a row belonging to another user is never touched. Store
// failures propagate to the caller.
func (s *GlucoseService) Update(ctx context.Context, log *database.GlucoseLog) (*database.GlucoseLog, error) {
	in := GlucoseLogInput{
		Timestamp: log.Timestamp,
		MealType:  log.MealType,
		Glycemia:  log.Glycemia,
		Dosage:    log.Dosage,
		Notes:     log.Notes,
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&database.GlucoseLog{}).
		Where("id = ? AND user_id = ?", log.ID, log.UserID).
		Updates(map[string]interface{}{
			"timestamp": log.Timestamp,
			"meal_type": log.MealType,
			"glycemia":  log.Glycemia,
			"dosage":    log.Dosage,
			"notes":     log.Notes,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update glucose log: %w", err)
	}

	var updated database.GlucoseLog
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", log.ID, log.UserID).
		First(&updated).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to reload glucose log: %w", err)
	}

	return &updated, nil
}

// Delete hard-deletes a log by id. Deleting a missing id is a no-op.
func (s *GlucoseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&database.GlucoseLog{}).Error; err != nil {
		return fmt.Errorf("failed to delete glucose log: %w", err)
	}
	return nil
}

// DeleteMany hard-deletes the given ids. An empty id set mutates nothing.
func (s *GlucoseService) DeleteMany(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&database.GlucoseLog{}).Error; err != nil {
		return fmt.Errorf("failed to delete glucose logs: %w", err)
	}
	return nil
}
