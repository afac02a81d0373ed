package utils

import (
	"math"
	"time"
)

// CalculateBMI returns weight(kg) / height(m)^2 rounded to one decimal, or
// nil when either input is non-positive.
func CalculateBMI(heightCm, weightKg float64) *float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return nil
	}
	heightM := heightCm / 100
	bmi := math.Round(weightKg/(heightM*heightM)*10) / 10
	return &bmi
}

// CalculateAge returns full years between birthdate and now.
func CalculateAge(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() ||
		(now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}
	return age
}
