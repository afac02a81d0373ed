package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/glucotrack/internal/logger"
)

// handleSignup creates the account, opens a session, and loads the user's
// state store so the first page render has data.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := s.users.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.openSession(c, user.ID); err != nil {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.openSession(c, user.ID); err != nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// openSession issues the cookie and transitions the user's store to
// loggedIn. A failed data load forces a logout instead of leaving the store
// half-filled. Writes the error response itself.
func (s *Server) openSession(c *gin.Context, userID string) error {
	if err := s.sessions.IssueSession(c.Writer, userID); err != nil {
		writeError(c, err)
		return err
	}

	store := s.stores.GetOrCreate(userID)
	if err := store.Load(c.Request.Context(), userID); err != nil {
		s.stores.Remove(userID)
		s.sessions.ClearSession(c.Writer)
		logger.Error("Failed to load state after auth", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return err
	}

	return nil
}

func (s *Server) handleLogout(c *gin.Context) {
	if userID, err := s.sessions.ResolveSession(c.Request); err == nil {
		s.stores.Remove(userID)
	}
	s.sessions.ClearSession(c.Writer)
	c.Status(http.StatusNoContent)
}

// handleSession reports the signed-in user for the session cookie, or a
// null user when there is no valid session. It never fails: an invalid or
// orphaned cookie reads as "not signed in".
func (s *Server) handleSession(c *gin.Context) {
	userID, err := s.sessions.ResolveSession(c.Request)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	user, err := s.users.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		s.sessions.ClearSession(c.Writer)
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}
