package server

import (
	"github.com/jayappagarisunil/web-tracker/internal/config"
	"github.com/jayappagarisunil/web-tracker/internal/fix"
	"github.com/jayappagarisunil/web-tracker/internal/history"
	"github.com/jayappagarisunil/web-tracker/internal/metrics"
	"github.com/jayappagarisunil/web-tracker/internal/route"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	fixes := fix.NewService(s.DB, s.Redis)
	routes := route.NewService(s.Cfg.OSRMBaseURL, s.Cfg.OSRMProfile, s.Redis)
	history.RegisterRoutes(s.App, history.NewService(fixes, routes), fixes)
}
