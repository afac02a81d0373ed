package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/glucotrack/internal/appstate"
	"github.com/vladimiradmaev/glucotrack/internal/auth"
	"github.com/vladimiradmaev/glucotrack/internal/interfaces"
)

// Server wires the HTTP surface: auth endpoints, the per-user CRUD
// endpoints, and the derived dashboard/report/reminder endpoints.
type Server struct {
	router    *gin.Engine
	sessions  *auth.SessionManager
	users     interfaces.UserServiceInterface
	reminders interfaces.ReminderServiceInterface
	stores    *appstate.Manager
}

// New creates a fully routed server.
func New(
	sessions *auth.SessionManager,
	users interfaces.UserServiceInterface,
	reminders interfaces.ReminderServiceInterface,
	stores *appstate.Manager,
) *Server {
	s := &Server{
		router:    gin.Default(),
		sessions:  sessions,
		users:     users,
		reminders: reminders,
		stores:    stores,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", s.handleSignup)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/logout", s.handleLogout)
		authGroup.GET("/session", s.handleSession)
	}

	protected := api.Group("")
	protected.Use(s.requireSession())
	{
		protected.GET("/profile", s.handleGetProfile)
		protected.PUT("/profile", s.handleUpdateProfile)

		protected.GET("/glucose-logs", s.handleListGlucoseLogs)
		protected.POST("/glucose-logs", s.handleAddGlucoseLog)
		protected.PUT("/glucose-logs/:id", s.handleUpdateGlucoseLog)
		protected.DELETE("/glucose-logs/:id", s.handleDeleteGlucoseLog)
		protected.POST("/glucose-logs/delete", s.handleDeleteGlucoseLogs)

		protected.GET("/weight-entries", s.handleListWeightEntries)
		protected.POST("/weight-entries", s.handleAddWeightEntry)
		protected.PUT("/weight-entries/:id", s.handleUpdateWeightEntry)
		protected.DELETE("/weight-entries/:id", s.handleDeleteWeightEntry)
		protected.POST("/weight-entries/delete", s.handleDeleteWeightEntries)

		protected.GET("/dashboard", s.handleDashboard)
		protected.GET("/reports", s.handleReports)
		protected.POST("/reminders/suggest", s.handleSuggestReminders)
	}
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
