package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/glucotrack/internal/database"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"github.com/vladimiradmaev/glucotrack/internal/services"
)

func (s *Server) handleListWeightEntries(c *gin.Context) {
	store := storeFrom(c)
	c.JSON(http.StatusOK, gin.H{"entries": toWeightEntryResponses(store.WeightHistory())})
}

func (s *Server) handleAddWeightEntry(c *gin.Context) {
	var req weightEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	date, err := parseTimeField(req.Date, "date")
	if err != nil {
		writeError(c, err)
		return
	}

	store := storeFrom(c)
	entry, err := store.AddWeightEntry(c.Request.Context(), services.WeightEntryInput{
		Date:   date,
		Weight: req.Weight,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toWeightEntryResponse(*entry))
}

func (s *Server) handleUpdateWeightEntry(c *gin.Context) {
	var req weightEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.Date == "" {
		writeError(c, apperrors.NewValidationError("date is required"))
		return
	}
	date, err := parseTimeField(req.Date, "date")
	if err != nil {
		writeError(c, err)
		return
	}

	store := storeFrom(c)
	entry, err := store.UpdateWeightEntry(c.Request.Context(), database.WeightEntry{
		ID:     c.Param("id"),
		Date:   date,
		Weight: req.Weight,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toWeightEntryResponse(*entry))
}

func (s *Server) handleDeleteWeightEntry(c *gin.Context) {
	store := storeFrom(c)
	if err := store.DeleteWeightEntry(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteWeightEntries(c *gin.Context) {
	var req deleteManyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	store := storeFrom(c)
	if err := store.DeleteWeightEntries(c.Request.Context(), req.IDs); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
