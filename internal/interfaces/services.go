package interfaces

import (
	"context"

	"github.com/vladimiradmaev/glucotrack/internal/database"
	"github.com/vladimiradmaev/glucotrack/internal/services"
)

// UserServiceInterface defines the contract for account and profile operations
type UserServiceInterface interface {
	Signup(ctx context.Context, email, password, name string) (*database.User, error)
	Login(ctx context.Context, email, password string) (*database.User, error)
	GetUserByID(ctx context.Context, userID string) (*database.User, error)
	GetProfile(ctx context.Context, userID string) (*database.User, error)
	UpdateProfile(ctx context.Context, userID string, update services.ProfileUpdate) (*database.User, error)
}

// GlucoseServiceInterface defines the contract for glucose log operations
type GlucoseServiceInterface interface {
	GetAll(ctx context.Context, userID string) ([]database.GlucoseLog, error)
	Add(ctx context.Context, userID string, in services.GlucoseLogInput) (*database.GlucoseLog, error)
	Update(ctx context.Context, log *database.GlucoseLog) (*database.GlucoseLog, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteMany(ctx context.Context, userID string, ids []string) error
}

// WeightServiceInterface defines the contract for weight history operations
type WeightServiceInterface interface {
	GetAll(ctx context.Context, userID string) ([]database.WeightEntry, error)
	Add(ctx context.Context, userID string, in services.WeightEntryInput) (*database.WeightEntry, error)
	Update(ctx context.Context, entry *database.WeightEntry) (*database.WeightEntry, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteMany(ctx context.Context, userID string, ids []string) error
}

// ReminderServiceInterface defines the contract for reminder suggestions
type ReminderServiceInterface interface {
	SuggestReminders(ctx context.Context, userID string, logs []database.GlucoseLog) []services.Reminder
	InvalidateCache(ctx context.Context, userID string)
}
