package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/glucotrack/internal/services"
)

func (s *Server) handleGetProfile(c *gin.Context) {
	store := storeFrom(c)
	c.JSON(http.StatusOK, toProfileResponse(store.User()))
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	update := services.ProfileUpdate{
		Name:   req.Name,
		Height: req.Height,
	}
	if req.Birthdate != nil {
		birthdate, err := parseTimeField(*req.Birthdate, "birthdate")
		if err != nil {
			writeError(c, err)
			return
		}
		if !birthdate.IsZero() {
			update.Birthdate = &birthdate
		}
	}

	store := storeFrom(c)
	profile, err := store.UpdateProfile(c.Request.Context(), update)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileResponse(profile))
}
