package server

import (
	"time"

	"github.com/vladimiradmaev/glucotrack/internal/database"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileUpdateRequest struct {
	Name      *string  `json:"name"`
	Birthdate *string  `json:"birthdate"` // RFC3339
	Height    *float64 `json:"height"`    // in cm
}

type glucoseLogRequest struct {
	Timestamp string  `json:"timestamp"` // RFC3339, empty means now
	MealType  string  `json:"mealType" binding:"required"`
	Glycemia  float64 `json:"glycemia" binding:"required,gt=0"`
	Dosage    float64 `json:"dosage" binding:"gte=0"`
	Notes     *string `json:"notes"`
}

type weightEntryRequest struct {
	Date   string  `json:"date"` // RFC3339, empty means now
	Weight float64 `json:"weight" binding:"required,gt=0"`
}

type deleteManyRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type profileResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Birthdate *string  `json:"birthdate"`
	Height    *float64 `json:"height"`
}

type glucoseLogResponse struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	MealType  string  `json:"mealType"`
	Glycemia  float64 `json:"glycemia"`
	Dosage    float64 `json:"dosage"`
	Notes     *string `json:"notes"`
}

type weightEntryResponse struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

func canonicalTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimeField(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field + " must be an RFC 3339 timestamp")
	}
	return t, nil
}

func toUserResponse(u *database.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, DisplayName: u.Name}
}

func toProfileResponse(u *database.User) profileResponse {
	resp := profileResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Height: u.Height,
	}
	if u.Birthdate != nil {
		birthdate := canonicalTime(*u.Birthdate)
		resp.Birthdate = &birthdate
	}
	return resp
}

func toGlucoseLogResponse(l database.GlucoseLog) glucoseLogResponse {
	return glucoseLogResponse{
		ID:        l.ID,
		Timestamp: canonicalTime(l.Timestamp),
		MealType:  string(l.MealType),
		Glycemia:  l.Glycemia,
		Dosage:    l.Dosage,
		Notes:     l.Notes,
	}
}

func toGlucoseLogResponses(logs []database.GlucoseLog) []glucoseLogResponse {
	out := make([]glucoseLogResponse, len(logs))
	for i, l := range logs {
		out[i] = toGlucoseLogResponse(l)
	}
	return out
}

func toWeightEntryResponse(e database.WeightEntry) weightEntryResponse {
	return weightEntryResponse{
		ID:     e.ID,
		Date:   canonicalTime(e.Date),
		Weight: e.Weight,
	}
}

func toWeightEntryResponses(entries []database.WeightEntry) []weightEntryResponse {
	out := make([]weightEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toWeightEntryResponse(e)
	}
	return out
}
