// Package api is the ops HTTP surface: health, bot-wide stats and
// broadcasts for admins holding a token issued via /apitoken.
package api

import (
	"strings"
	"time"

	"github.com/Tohidkhan6332/quizbot/internal/config"
	"github.com/Tohidkhan6332/quizbot/internal/handlers"
	"github.com/Tohidkhan6332/quizbot/internal/middleware"
	"github.com/Tohidkhan6332/quizbot/internal/security"
	"github.com/Tohidkhan6332/quizbot/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	app      *fiber.App
	config   *config.Config
	handlers *handlers.HandlerManager
	bot      handlers.BotInterface
	limiter  *middleware.RateLimiter
}

func NewServer(cfg *config.Config, mgr *handlers.HandlerManager, bot handlers.BotInterface) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "quizbot ops api",
		DisableStartupMessage: true,
	})

	s := &Server{
		app:      app,
		config:   cfg,
		handlers: mgr,
		bot:      bot,
		limiter:  middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute),
	}

	app.Use(s.ipRateLimit)
	app.Get("/health", s.handleHealth)

	v1 := app.Group("/api/v1", s.requireAdminToken)
	v1.Get("/stats", s.handleStats)
	v1.Post("/broadcast", s.handleBroadcast)

	return s
}

// Start blocks serving on the configured port.
func (s *Server) Start() error {
	logger.Info("Ops API listening", "port", s.config.AppPort)
	return s.app.Listen(":" + s.config.AppPort)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) ipRateLimit(c *fiber.Ctx) error {
	if !s.limiter.CheckIPLimit(c.IP()) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "rate limit exceeded",
		})
	}
	return c.Next()
}

// requireAdminToken guards everything under /api/v1.
func (s *Server) requireAdminToken(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing bearer token",
		})
	}

	claims, err := security.ValidateAPIToken(strings.TrimPrefix(auth, "Bearer "), s.config.JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid token",
		})
	}
	if !claims.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin token required",
		})
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	users, err := s.handlers.UserRepo.CountUsers()
	if err != nil {
		return s.internalError(c, err)
	}
	totalQ, activeQ, err := s.handlers.QuestionRepo.CountQuestions()
	if err != nil {
		return s.internalError(c, err)
	}
	battles, err := s.handlers.BattleRepo.CountBattles()
	if err != nil {
		return s.internalError(c, err)
	}
	points, err := s.handlers.StatsRepo.TotalPoints()
	if err != nil {
		return s.internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"users":            users,
		"questions":        totalQ,
		"questions_active": activeQ,
		"battles_played":   battles,
		"battles_live":     s.handlers.Battles.Len(),
		"points_awarded":   points,
	})
}

type broadcastRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleBroadcast(c *fiber.Ctx) error {
	var req broadcastRequest
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	sent, failed := s.handlers.BroadcastMessage(security.SanitizeString(req.Message), s.bot)
	return c.JSON(fiber.Map{
		"delivered": sent,
		"failed":    failed,
	})
}

func (s *Server) internalError(c *fiber.Ctx, err error) error {
	logger.Error("Ops API request failed", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
