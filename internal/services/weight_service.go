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

type WeightService struct {
	db *gorm.DB
}

func NewWeightService(db *gorm.DB) *WeightService {
	return &WeightService{db: db}
}

// WeightEntryInput carries the fields of a new weight entry. A zero Date
// means "now".
type WeightEntryInput struct {
	Date   time.Time
	Weight float64 // in kg
}

func (in *WeightEntryInput) validate() error {
	if in.Weight <= 0 {
		return apperrors.NewValidationError("weight must be greater than zero")
	}
	return nil
}

// GetAll returns the user's weight history, most recent first.
func (s *WeightService) GetAll(ctx context.Context, userID string) ([]database.WeightEntry, error) {
	var entries []database.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to get weight history: %w", err)
	}
	return entries, nil
}

// Add persists a new weight entry for userID and returns the stored row.
func (s *WeightService) Add(ctx context.Context, userID string, in WeightEntryInput) (*database.WeightEntry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	entry := &database.WeightEntry{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   date,
		Weight: in.Weight,
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create weight entry: %w", err)
	}

	return entry, nil
}

// Update persists the mutable fields of the entry, scoped to the owning
// user. Store failures propagate to the caller.
func (s *WeightService) Update(ctx context.Context, entry *database.WeightEntry) (*database.WeightEntry, error) {
	in := WeightEntryInput{Date: entry.Date, Weight: entry.Weight}
	if err := in.validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&database.WeightEntry{}).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		Updates(map[string]interface{}{
			"date":   entry.Date,
			"weight": entry.Weight,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update weight entry: %w", err)
	}

	var updated database.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entry.ID, entry.UserID).
		First(&updated).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to reload weight entry: %w", err)
	}

	return &updated, nil
}

// Delete hard-deletes an entry by id. Deleting a missing id is a no-op.
func (s *WeightService) Delete(ctx context.Context, userID, id string) error {
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&database.WeightEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete weight entry: %w", err)
	}
	return nil
}

// DeleteMany hard-deletes the given ids. An empty id set mutates nothing.
func (s *WeightService) DeleteMany(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&database.WeightEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete weight entries: %w", err)
	}
	return nil
}
