package database

import (
	"time"
)

// MealType tags a glucose reading with the meal it relates to.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
	MealFasting   MealType = "Fasting"
	MealNone      MealType = "NoMeal"
)

// MealTypes is the canonical set accepted by validation and the schema.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack, MealFasting, MealNone}

// Valid reports whether m belongs to the canonical meal-type set.
func (m MealType) Valid() bool {
	for _, t := range MealTypes {
		if m == t {
			return true
		}
	}
	return false
}

// User represents an account in the system
type User struct {
	ID           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Birthdate    *time.Time
	Height       *float64 // in cm
}

// GlucoseLog represents a single glucose reading with its insulin dosage
type GlucoseLog struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string `gorm:"index;not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Timestamp time.Time `gorm:"index;not null"`
	MealType  MealType  `gorm:"not null"`
	Glycemia  float64   `gorm:"not null"` // in g/L
	Dosage    float64   `gorm:"not null"` // Novorapide units
	Notes     *string
}

// WeightEntry represents a weight measurement on a given date
type WeightEntry struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string `gorm:"index;not null"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Date      time.Time `gorm:"index;not null"`
	Weight    float64   `gorm:"not null"` // in kg
}

// TableName keeps the historical table name for weight entries.
func (WeightEntry) TableName() string {
	return "weight_history"
}
