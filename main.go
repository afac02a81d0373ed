package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/glucotrack/internal/appstate"
	"github.com/vladimiradmaev/glucotrack/internal/auth"
	"github.com/vladimiradmaev/glucotrack/internal/config"
	"github.com/vladimiradmaev/glucotrack/internal/database"
	"github.com/vladimiradmaev/glucotrack/internal/logger"
	"github.com/vladimiradmaev/glucotrack/internal/server"
	"github.com/vladimiradmaev/glucotrack/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting GlucoTrack...")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	// Reminder cache is optional; run without it when Redis is not configured.
	var reminderCache *services.ReminderCache
	if cfg.Redis.Host != "" {
		reminderCache, err = services.NewReminderCache(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Warn("Failed to connect to Redis, continuing without reminder cache", "error", err)
			reminderCache = nil
		}
	}

	reminderAI, err := services.NewGeminiReminderAI(cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatalf("Failed to create Gemini client: %v", err)
	}

	userService := services.NewUserService(db)
	glucoseService := services.NewGlucoseService(db)
	weightService := services.NewWeightService(db)
	reminderService := services.NewReminderService(reminderAI, reminderCache)
	logger.Info("Services initialized successfully")

	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.IsProduction())
	stores := appstate.NewManager(userService, glucoseService, weightService)

	srv := server.New(sessions, userService, reminderService, stores)
	logger.Info("Server listening", "addr", cfg.ListenAddr)
	if err := srv.Run(cfg.ListenAddr); err != nil {
		logger.Fatalf("Server stopped with error: %v", err)
	}
}
