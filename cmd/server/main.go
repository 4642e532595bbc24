package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nandha2804/TMS/config"
	"github.com/nandha2804/TMS/db"
	authhandler "github.com/nandha2804/TMS/internal/auth/handler"
	authrepo "github.com/nandha2804/TMS/internal/auth/repository/postgres"
	authservice "github.com/nandha2804/TMS/internal/auth/service"
	"github.com/nandha2804/TMS/internal/middleware"
	taskhandler "github.com/nandha2804/TMS/internal/task/handler"
	taskrepo "github.com/nandha2804/TMS/internal/task/repository/postgres"
	taskservice "github.com/nandha2804/TMS/internal/task/service"
	"github.com/nandha2804/TMS/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("tms", "error").Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New("tms", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	userRepo := authrepo.NewPostgresRepository(dbPool)
	tokenService := authservice.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	throttle := authservice.NewLoginThrottle(cfg.LoginMaxAttempts, cfg.LoginRateLimitWindow)
	throttle.Start(ctx, time.Hour)
	ledger := authservice.NewRefreshTokenLedger()
	userService := authservice.NewUserService(userRepo, tokenService, throttle, ledger, cfg, log)
	authHandler := authhandler.NewAuthHandler(userService)

	tasksRepo := taskrepo.NewPostgresRepository(dbPool)
	taskService := taskservice.NewTaskService(tasksRepo)
	taskHandler := taskhandler.NewTaskHandler(taskService)

	app := fiber.New(fiber.Config{
		AppName:      "tms",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(fiberrecover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMaxRequests,
		Expiration: cfg.RateLimitWindow,
	}))
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := dbPool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}

		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authhandler.RegisterRoutes(app, authHandler)
	taskhandler.RegisterRoutes(app, taskHandler, authHandler)

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
