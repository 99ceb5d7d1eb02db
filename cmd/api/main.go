package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examwatch/examwatch-backend/internal/config"
	"github.com/examwatch/examwatch-backend/internal/domain"
	"github.com/examwatch/examwatch-backend/internal/handler"
	"github.com/examwatch/examwatch-backend/internal/middleware"
	"github.com/examwatch/examwatch-backend/internal/repository"
	"github.com/examwatch/examwatch-backend/internal/routes"
	"github.com/examwatch/examwatch-backend/internal/seo"
	"github.com/examwatch/examwatch-backend/internal/service"
	pkgcache "github.com/examwatch/examwatch-backend/pkg/cache"
	pkgjwt "github.com/examwatch/examwatch-backend/pkg/jwt"
	pkglogger "github.com/examwatch/examwatch-backend/pkg/logger"
	pkgredis "github.com/examwatch/examwatch-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/examwatch/examwatch-backend/docs"
)

// @title           ExamWatch Backend API
// @version         1.0
// @description     Exam notification portal - posts, search, feeds
//
// @license.name    MIT
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.Init(env)
	pkglogger.GetLogger().Info().
		Str("env", env).
		Strs("env_files", dotenvFiles).
		Msg("starting")

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg, env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&domain.Post{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	pkglogger.GetLogger().Info().Msg("connected to MySQL")

	// Redis (optional: the portal serves without it, just uncached)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		redisClient = nil
	}
	var cacheService pkgcache.Service
	if redisClient != nil {
		cacheService = pkgcache.NewService(redisClient)
	}

	// Repositories and services
	postRepo := repository.NewPostRepository(db)
	postSvc := service.NewPostService(postRepo, cacheService)
	searchSvc := service.NewSearchService(postRepo, cacheService)

	scheduler := service.NewSchedulerService(postRepo, cacheService)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	jwtManager := pkgjwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	seoBuilder := seo.NewBuilder(cfg.Site.BaseURL, cfg.Site.Title)

	// Handlers
	postHandler := handler.NewPostHandler(postSvc, seoBuilder)
	searchHandler := handler.NewSearchHandler(searchSvc, seoBuilder)
	authHandler := handler.NewAuthHandler(cfg.Admin, jwtManager)
	feedHandler := handler.NewFeedHandler(postRepo, cacheService, cfg.Site)
	healthHandler := handler.NewHealthHandler(db, cacheService)

	// Router
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Redirects(cfg.Redirects))
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Site.BaseURL},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           86400,
	}))

	router.LoadHTMLGlob("templates/*.html")

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.Setup(router, postHandler, searchHandler, authHandler, feedHandler, healthHandler, jwtManager)

	// Serve with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.GetLogger().Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	pkglogger.GetLogger().Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		pkglogger.GetLogger().Error().Err(err).Msg("forced shutdown")
	}
}

// initDB opens the MySQL connection pool
func initDB(cfg *config.Config, env string) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if env == "local" || env == "development" {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
