package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"servicedir/internal/config"
	"servicedir/internal/database"
	"servicedir/internal/middleware"
	"servicedir/internal/modules/admin"
	"servicedir/internal/modules/booking"
	"servicedir/internal/modules/catalog"
	"servicedir/internal/modules/review"
	"servicedir/internal/pkg/logger"
	"servicedir/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.Init(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("database connect failed", zap.Error(err))
	}

	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	catalogService := catalog.NewService(serviceRepo, categoryRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(bookingRepo)
	bookingHandler := booking.NewHandler(bookingService)

	reviewService := review.NewService(reviewRepo)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(serviceRepo, bookingRepo, categoryRepo, zl)
	adminHandler := admin.NewHandler(adminService, catalogService, bookingService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.CORS(cfg.ExtraCORSOrigins()))

	v1 := r.Group("/api/v1")
	{
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		reviewHandler.RegisterRoutes(v1)

		// The admin surface carries no auth of its own; front it with a
		// gateway or network policy.
		adminHandler.RegisterRoutes(v1.Group("/admin"))
	}

	if cfg.RecountSchedule != "" {
		cr := cron.New()
		if _, err := cr.AddFunc(cfg.RecountSchedule, func() {
			if err := adminService.RecountCategories(context.Background()); err != nil {
				zl.Warn("scheduled category recount failed", zap.Error(err))
			}
		}); err != nil {
			zl.Fatal("bad RECOUNT_SCHEDULE", zap.Error(err))
		}
		cr.Start()
		defer cr.Stop()
	}

	zl.Info("listening", zap.String("port", cfg.AppPort))
	if err := r.Run(":" + cfg.AppPort); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
