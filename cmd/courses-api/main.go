package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/sikt-nva/fs-courses-api/api/swagger"
	"github.com/sikt-nva/fs-courses-api/internal/fs"
	"github.com/sikt-nva/fs-courses-api/internal/handler"
	internalmiddleware "github.com/sikt-nva/fs-courses-api/internal/middleware"
	"github.com/sikt-nva/fs-courses-api/internal/repository"
	"github.com/sikt-nva/fs-courses-api/internal/service"
	"github.com/sikt-nva/fs-courses-api/pkg/cache"
	"github.com/sikt-nva/fs-courses-api/pkg/config"
	"github.com/sikt-nva/fs-courses-api/pkg/database"
	appErrors "github.com/sikt-nva/fs-courses-api/pkg/errors"
	"github.com/sikt-nva/fs-courses-api/pkg/logger"
	corsmiddleware "github.com/sikt-nva/fs-courses-api/pkg/middleware/cors"
	reqidmiddleware "github.com/sikt-nva/fs-courses-api/pkg/middleware/requestid"
	"github.com/sikt-nva/fs-courses-api/pkg/response"
)

// @title FS Courses API
// @version 1.0.0
// @description Lists the courses currently taught at the caller's institution, as registered in FS.
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	checks := map[string]handler.ReadinessCheck{}

	var institutions *service.InstitutionResolver
	switch cfg.FS.InstitutionSource {
	case config.InstitutionSourcePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer db.Close()
		checks["postgres"] = db.PingContext
		institutions = service.NewInstitutionResolver(repository.NewInstitutionRepository(db), logr)
	default:
		institutions = service.NewInstitutionResolver(repository.NewStaticInstitutionRepository(cfg.FS.Institutions), logr)
	}

	var cacheSvc *service.CacheService
	if cfg.Courses.CacheEnabled {
		switch cfg.Courses.CacheBackend {
		case config.CacheBackendRedis:
			rdb, err := cache.NewRedis(ctx, cfg.Redis)
			if err != nil {
				logr.Warn("course cache disabled, redis unavailable", zap.Error(err))
				break
			}
			cacheRepo := repository.NewCacheRepository(rdb, logr)
			defer cacheRepo.Close() //nolint:errcheck
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Courses.CacheTTL, logr, true)
		default:
			cacheRepo := repository.NewMemoryCacheRepository(cfg.Courses.CacheTTL, 10*time.Minute)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Courses.CacheTTL, logr, true)
		}
	}

	decoder, err := fs.DecoderFor(cfg.FS.RecordFormat)
	if err != nil {
		logr.Fatal("invalid FS record format", zap.Error(err))
	}
	var observer fs.FetchObserver
	if metrics != nil {
		observer = metrics
	}
	fsClient := fs.NewClient(cfg.FS.BaseURI, decoder, fs.DefaultHTTPClient(cfg.FS.Timeout), observer)

	courseSvc := service.NewCourseService(service.CourseServiceParams{
		Fetcher:      fsClient,
		Decoder:      fsClient.Decoder(),
		Institutions: institutions,
		Cache:        cacheSvc,
		Metrics:      metrics,
		Logger:       logr,
		Config: service.CourseServiceConfig{
			FailurePolicy: cfg.Courses.FailurePolicy,
			Location:      cfg.Courses.Timezone,
			CacheTTL:      cfg.Courses.CacheTTL,
		},
	})
	authSvc := service.NewAuthService(logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		Issuer:            cfg.JWT.Issuer,
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(internalmiddleware.Metrics(metrics))
	}

	metricsHandler := handler.NewMetricsHandler(metrics, checks, logr)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	courseHandler := handler.NewCourseHandler(courseSvc)
	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.WithResponseMeta())
	api.Use(internalmiddleware.JWT(authSvc))
	api.GET("/courses/current", courseHandler.Current)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.ErrNotFound)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("record_format", cfg.FS.RecordFormat),
			zap.String("institution_source", cfg.FS.InstitutionSource),
			zap.Int("institutions_configured", len(cfg.FS.Institutions)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
