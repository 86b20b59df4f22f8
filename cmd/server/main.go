package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/waseet/event-social/internal/cache"
	"github.com/waseet/event-social/internal/config"
	"github.com/waseet/event-social/internal/database"
	"github.com/waseet/event-social/internal/handler"
	"github.com/waseet/event-social/internal/queue"
	"github.com/waseet/event-social/internal/repository"
	"github.com/waseet/event-social/internal/router"
	"github.com/waseet/event-social/internal/service"
	"github.com/waseet/event-social/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Fatal().Msg("redis connection failed")
	}
	defer rdb.Close()

	refreshTTL, err := config.ParseDayTTL(cfg.RefreshTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid JWT_REFRESH_TTL")
	}
	tokens := utils.TokenConfig{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     time.Duration(cfg.AccessTTLMin) * time.Minute,
		RefreshTTL:    refreshTTL,
	}

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	requests := repository.NewEventRequestRepo(db)

	tokenCache := cache.NewTokenCache(rdb)
	publisher := queue.NewPublisher(cfg.AMQPURL, cfg.QueueName, logger)

	authSvc := service.NewAuthService(users, tokenCache, publisher, tokens, cfg.BcryptCost, logger)
	eventSvc := service.NewEventService(events, requests, publisher, logger)
	userSvc := service.NewUserService(users, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.Register(e, router.Deps{
		Auth:         handler.NewAuthHandler(authSvc),
		Events:       handler.NewEventHandler(eventSvc),
		Users:        handler.NewUserHandler(userSvc),
		UserLoader:   users,
		AccessSecret: cfg.AccessSecret,
	})

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
