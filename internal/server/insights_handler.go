package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"github.com/vladimiradmaev/glucotrack/internal/utils"
)

type dashboardResponse struct {
	LatestGlycemia *float64 `json:"latestGlycemia"`
	GlucoseTrend   string   `json:"glucoseTrend"` // "up", "down" or "stable"
	LatestWeight   *float64 `json:"latestWeight"`
	BMI            *float64 `json:"bmi"`
}

type glucoseStats struct {
	Count     int     `json:"count"`
	Average   float64 `json:"average"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	AvgDosage float64 `json:"avgDosage"`
}

type reportsResponse struct {
	Days         int                   `json:"days"`
	Glucose      *glucoseStats         `json:"glucose"`
	WeightChange *float64              `json:"weightChange"`
	GlucoseLogs  []glucoseLogResponse  `json:"glucoseLogs"`
	WeightSeries []weightEntryResponse `json:"weightSeries"`
}

// handleDashboard summarizes the cached state: latest reading, its trend
// against the previous one, latest weight, and BMI from profile height.
func (s *Server) handleDashboard(c *gin.Context) {
	store := storeFrom(c)
	logs := store.GlucoseLogs()
	history := store.WeightHistory()
	profile := store.User()

	resp := dashboardResponse{GlucoseTrend: "stable"}

	if len(logs) > 0 {
		resp.LatestGlycemia = &logs[0].Glycemia
	}
	if len(logs) > 1 {
		switch {
		case logs[0].Glycemia > logs[1].Glycemia:
			resp.GlucoseTrend = "up"
		case logs[0].Glycemia < logs[1].Glycemia:
			resp.GlucoseTrend = "down"
		}
	}

	if len(history) > 0 {
		resp.LatestWeight = &history[0].Weight
		if profile.Height != nil {
			resp.BMI = utils.CalculateBMI(*profile.Height, history[0].Weight)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleReports filters the caches to the requested day range and computes
// aggregate glucose and weight statistics.
func (s *Server) handleReports(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		writeError(c, apperrors.NewValidationError("days must be a positive integer"))
		return
	}

	store := storeFrom(c)
	since := time.Now().AddDate(0, 0, -days)

	resp := reportsResponse{
		Days:         days,
		GlucoseLogs:  []glucoseLogResponse{},
		WeightSeries: []weightEntryResponse{},
	}

	var glycemias, dosages []float64
	for _, log := range store.GlucoseLogs() {
		if log.Timestamp.Before(since) {
			continue
		}
		resp.GlucoseLogs = append(resp.GlucoseLogs, toGlucoseLogResponse(log))
		glycemias = append(glycemias, log.Glycemia)
		dosages = append(dosages, log.Dosage)
	}

	if len(glycemias) > 0 {
		stats := &glucoseStats{
			Count: len(glycemias),
			Min:   glycemias[0],
			Max:   glycemias[0],
		}
		var sum, dosageSum float64
		for i, g := range glycemias {
			sum += g
			dosageSum += dosages[i]
			if g < stats.Min {
				stats.Min = g
			}
			if g > stats.Max {
				stats.Max = g
			}
		}
		stats.Average = sum / float64(len(glycemias))
		stats.AvgDosage = dosageSum / float64(len(dosages))
		resp.Glucose = stats
	}

	// Cached history is newest first, so the change is first minus last.
	var inRange []float64
	for _, entry := range store.WeightHistory() {
		if entry.Date.Before(since) {
			continue
		}
		resp.WeightSeries = append(resp.WeightSeries, toWeightEntryResponse(entry))
		inRange = append(inRange, entry.Weight)
	}
	if len(inRange) > 0 {
		change := inRange[0] - inRange[len(inRange)-1]
		resp.WeightChange = &change
	}

	c.JSON(http.StatusOK, resp)
}

// handleSuggestReminders asks the reminder service for suggestions based on
// the cached glucose logs. The service degrades to canned reminders instead
// of failing, so this endpoint always returns 200.
func (s *Server) handleSuggestReminders(c *gin.Context) {
	store := storeFrom(c)
	reminders := s.reminders.SuggestReminders(c.Request.Context(), store.User().ID, store.GlucoseLogs())
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}
