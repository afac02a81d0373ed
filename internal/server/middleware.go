package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/glucotrack/internal/appstate"
	apperrors "github.com/vladimiradmaev/glucotrack/internal/errors"
	"github.com/vladimiradmaev/glucotrack/internal/logger"
)

const storeContextKey = "appstate.store"

// requireSession authenticates the request from the session cookie, resolves
// the user's state store (loading it on first use), and aborts with 401 when
// any step fails.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.sessions.ResolveSession(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrNotAuthenticated.Message})
			return
		}

		store := s.stores.GetOrCreate(userID)
		if store.State() != appstate.StateLoggedIn {
			if err := store.Load(c.Request.Context(), userID); err != nil {
				s.stores.Remove(userID)
				s.sessions.ClearSession(c.Writer)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrNotAuthenticated.Message})
				return
			}
		}

		c.Set(storeContextKey, store)
		c.Next()
	}
}

func storeFrom(c *gin.Context) *appstate.Store {
	return c.MustGet(storeContextKey).(*appstate.Store)
}

// writeError maps application errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case apperrors.ErrorTypeConflict:
			status = http.StatusConflict
		case apperrors.ErrorTypePermission:
			status = http.StatusUnauthorized
		case apperrors.ErrorTypeNotFound:
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": appErr.Message})
		return
	}

	logger.Error("Request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
