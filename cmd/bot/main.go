package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tohidkhan6332/quizbot/internal/api"
	"github.com/Tohidkhan6332/quizbot/internal/config"
	"github.com/Tohidkhan6332/quizbot/internal/database"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
	"github.com/Tohidkhan6332/quizbot/telegram"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Trivia Quiz Bot...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed starter questions on an empty database
	if err := database.SeedQuestions(db); err != nil {
		logger.Warn("Failed to seed questions", "error", err)
	}

	// Initialize and start Telegram bot
	bot, err := telegram.InitBot(cfg, db)
	if err != nil {
		logger.Fatal("Failed to initialize bot", err)
	}

	// Start the ops HTTP API
	server := api.NewServer(cfg, bot.Handlers(), bot)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Ops API stopped", "error", err)
		}
	}()

	logger.Info("Bot started successfully", "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	bot.Stop()
	if err := server.Shutdown(); err != nil {
		logger.Error("Failed to stop ops API", "error", err)
	}
	logger.Info("Bot stopped")
}
