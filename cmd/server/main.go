package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/arktribe/tribestore/internal/config"
	"github.com/arktribe/tribestore/internal/database"
	"github.com/arktribe/tribestore/internal/handler"
	"github.com/arktribe/tribestore/internal/logger"
	"github.com/arktribe/tribestore/internal/middleware"
	"github.com/arktribe/tribestore/internal/queue"
	"github.com/arktribe/tribestore/internal/repository"
	"github.com/arktribe/tribestore/internal/router"
	"github.com/arktribe/tribestore/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: without it the rate limiter and response cache
	// degrade to no-ops.
	rdb := config.NewRedisClient()

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	tribeRepo := repository.NewTribeRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	leaseRepo := repository.NewLeaseRepo(db)
	leaseLogRepo := repository.NewLeaseLogRepo(db)
	itemRepo := repository.NewItemRepo(db)
	dinoRepo := repository.NewDinoRepo(db)
	geneticRepo := repository.NewGeneticRepo(db)
	comboRepo := repository.NewComboRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	blueprintRepo := repository.NewBlueprintRepo(db)

	// Handlers.
	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		Lease:      handler.NewLeaseHandler(leaseRepo, userRepo, accountRepo),
		LeaseLogs:  handler.NewLeaseLogHandler(leaseLogRepo),
		Tribes:     handler.NewTribeHandler(tribeRepo),
		Users:      handler.NewUserHandler(userRepo),
		Accounts:   handler.NewAccountHandler(accountRepo, leaseRepo),
		Items:      handler.NewItemHandler(itemRepo),
		Dinos:      handler.NewDinoHandler(dinoRepo),
		Genetics:   handler.NewGeneticHandler(geneticRepo),
		Combos:     handler.NewComboHandler(comboRepo),
		Recipes:    handler.NewRecipeHandler(recipeRepo),
		Blueprints: handler.NewBlueprintHandler(blueprintRepo),
	}
	mw := router.Middlewares{
		RateLimit:      middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		OccupancyCache: middleware.NewOccupancyCache(config.LoadCacheConfig(), rdb),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	router.Register(e, h, mw, cfg.JWTSecret)

	// Background workers: playtime ledger consumer and maintenance cron.
	go func() {
		if err := queue.StartLeaseConsumer(); err != nil {
			logger.Error("lease consumer stopped", zap.Error(err))
		}
	}()
	maint := service.NewMaintenance(tokenRepo, leaseLogRepo)
	if err := maint.Start(); err != nil {
		logger.Fatal("maintenance scheduler failed", zap.Error(err))
	}
	defer maint.Stop()
	defer logger.Sync()

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
