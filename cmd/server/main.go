package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/tripshare/backend/internal/application/identity"
	reviewapp "github.com/tripshare/backend/internal/application/review"
	tripapp "github.com/tripshare/backend/internal/application/trip"
	"github.com/tripshare/backend/internal/infrastructure/auth"
	"github.com/tripshare/backend/internal/infrastructure/config"
	"github.com/tripshare/backend/internal/infrastructure/logger"
	"github.com/tripshare/backend/internal/infrastructure/persistence"
	"github.com/tripshare/backend/internal/interfaces/http/handler"
	"github.com/tripshare/backend/internal/interfaces/http/middleware"
	"github.com/tripshare/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting tripshare backend",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Environment),
		zap.String("addr", cfg.HTTP.Addr()),
	)

	db, err := persistence.NewDatabaseWithLogger(cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	tripRepo := persistence.NewGormTripRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, tripRepo, reviewRepo, log)
	tripService := tripapp.NewTripService(tripRepo, reviewRepo, log)
	reviewService := reviewapp.NewReviewService(reviewRepo, tripRepo, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	tripHandler := handler.NewTripHandler(tripService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	healthHandler := handler.NewHealthHandler(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(int64(cfg.HTTP.BodyLimitMB) << 20))

	engine.GET("/health", healthHandler.Check)

	// Bearer auth per route; listing and detail stay public
	authRequired := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Logger:     log,
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	authRoutes := router.NewDomainGroup("auth", "/auth").
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		GET("/me", authRequired, authHandler.Me)

	tripRoutes := router.NewDomainGroup("trips", "/trips").
		GET("", tripHandler.List).
		GET("/:id", tripHandler.Get).
		POST("", authRequired, tripHandler.Create).
		PUT("/:id", authRequired, tripHandler.Update).
		PUT("/:id/cancel", authRequired, tripHandler.Cancel).
		PUT("/:id/conclude", authRequired, tripHandler.Conclude).
		POST("/:id/join", authRequired, tripHandler.Join).
		POST("/:id/leave", authRequired, tripHandler.Leave).
		DELETE("/:id/participants/:userId", authRequired, tripHandler.RemoveParticipant).
		POST("/:id/reviews", authRequired, reviewHandler.Create)

	userRoutes := router.NewDomainGroup("users", "/users").
		GET("/my-trips", authRequired, userHandler.MyTrips).
		GET("/:id/profile", authRequired, userHandler.GetProfile).
		PUT("/:id", authRequired, userHandler.UpdateProfile)

	r.Register(authRoutes).Register(tripRoutes).Register(userRoutes)
	r.Setup()

	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
