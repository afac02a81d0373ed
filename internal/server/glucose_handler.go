package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/glucotrack/internal/database"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"github.com/vladimiradmaev/glucotrack/internal/services"
)

func (s *Server) handleListGlucoseLogs(c *gin.Context) {
	store := storeFrom(c)
	c.JSON(http.StatusOK, gin.H{"logs": toGlucoseLogResponses(store.GlucoseLogs())})
}

func (s *Server) handleAddGlucoseLog(c *gin.Context) {
	var req glucoseLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	timestamp, err := parseTimeField(req.Timestamp, "timestamp")
	if err != nil {
		writeError(c, err)
		return
	}

	store := storeFrom(c)
	log, err := store.AddGlucoseLog(c.Request.Context(), services.GlucoseLogInput{
		Timestamp: timestamp,
		MealType:  database.MealType(req.MealType),
		Glycemia:  req.Glycemia,
		Dosage:    req.Dosage,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	s.reminders.InvalidateCache(c.Request.Context(), store.User().ID)
	c.JSON(http.StatusCreated, toGlucoseLogResponse(*log))
}

func (s *Server) handleUpdateGlucoseLog(c *gin.Context) {
	var req glucoseLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Timestamp == "" {
		writeError(c, apperrors.NewValidationError("timestamp is required"))
		return
	}
	timestamp, err := parseTimeField(req.Timestamp, "timestamp")
	if err != nil {
		writeError(c, err)
		return
	}

	store := storeFrom(c)
	log, err := store.UpdateGlucoseLog(c.Request.Context(), database.GlucoseLog{
		ID:        c.Param("id"),
		Timestamp: timestamp,
		MealType:  database.MealType(req.MealType),
		Glycemia:  req.Glycemia,
		Dosage:    req.Dosage,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	s.reminders.InvalidateCache(c.Request.Context(), store.User().ID)
	c.JSON(http.StatusOK, toGlucoseLogResponse(*log))
}

func (s *Server) handleDeleteGlucoseLog(c *gin.Context) {
	store := storeFrom(c)
	if err := store.DeleteGlucoseLog(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	s.reminders.InvalidateCache(c.Request.Context(), store.User().ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteGlucoseLogs(c *gin.Context) {
	var req deleteManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	store := storeFrom(c)
	if err := store.DeleteGlucoseLogs(c.Request.Context(), req.IDs); err != nil {
		writeError(c, err)
		return
	}
	s.reminders.InvalidateCache(c.Request.Context(), store.User().ID)
	c.Status(http.StatusNoContent)
}
