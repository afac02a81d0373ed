package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/glucotrack/internal/auth"
	"github.com/vladimiradmaev/glucotrack/internal/database"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileUpdate carries the mutable profile fields; nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name      *string
	Birthdate *time.Time
	Height    *float64
}

// Signup creates a new account. Reusing an existing email fails with
// ErrDuplicateEmail and creates no row.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (*database.User, error) {
	var existing database.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&existing)
	if result.Error == nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if result.Error != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check existing email: %w", result.Error)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &database.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials. Unknown email and wrong password are
// deliberately indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByID returns the user or nil when no such user exists.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*database.User, error) {
	var user database.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetProfile returns the profile for userID, or nil when missing.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*database.User, error) {
	return s.GetUserByID(ctx, userID)
}

// UpdateProfile persists the provided fields and returns the updated
// profile, or nil when the user does not exist.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*database.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Birthdate != nil {
		fields["birthdate"] = *update.Birthdate
	}
	if update.Height != nil {
		fields["height"] = *update.Height
	}

	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&database.User{}).
			Where("id = ?", userID).
			Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return s.GetProfile(ctx, userID)
}
