package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portal/config"
	"portal/cron"
	"portal/database"
	categoryRepo "portal/database/repository/category"
	reviewRepo "portal/database/repository/review"
	serviceRepo "portal/database/repository/service"
	"portal/handlers"
	"portal/metrics"
	"portal/middleware"
	"portal/routes"
	"portal/services/stats"
	"portal/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.RegisterValidators(); err != nil {
		logger.Fatal("main: failed to register validators", zap.Error(err))
	}

	// Owned resources, released in reverse order on shutdown.
	db, err := database.Connect(context.Background(), cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	redisClient, err := utils.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	redisOpt := cron.RedisOpt(cfg)
	taskClient := asynq.NewClient(redisOpt)

	// metrics.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// repositories.
	cache := utils.NewRedisCache(redisClient)
	svcRepo := serviceRepo.NewMongoServiceRepo(db.Collection(database.ServicesCollection))
	revRepo := reviewRepo.NewMongoReviewRepo(db.Collection(database.ReviewsCollection))
	catRepo := categoryRepo.NewCachedCategoryRepo(
		categoryRepo.NewMongoCategoryRepo(db.Collection(database.CategoriesCollection)),
		cache,
		cfg.StatsCacheTTL,
	)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svcRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("main: failed to ensure service indexes", zap.Error(err))
	}
	if err := revRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Warn("main: failed to ensure review indexes", zap.Error(err))
	}
	cancelIndexes()

	// services.
	statsService := &stats.DefaultStatsService{
		Services: svcRepo,
		Reviews:  revRepo,
		Cache:    cache,
		TTL:      cfg.StatsCacheTTL,
		Metrics:  collector,
	}
	refresher := stats.NewAsyncRefresher(taskClient, cache)

	worker, err := cron.StartWorker(redisOpt, statsService, logger)
	if err != nil {
		logger.Fatal("main: failed to start background worker", zap.Error(err))
	}

	healthCtx, stopHealth := context.WithCancel(context.Background())
	health := utils.NewHealthMonitor(db, utils.PingFunc(func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}), 30*time.Second)
	health.Start(healthCtx)

	signer, err := utils.NewTokenSigner(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("main: failed to create token signer", zap.Error(err))
	}
	gate := middleware.NewGate(signer, collector)

	handlerBundle := handlers.NewHandlerBundle(
		&handlers.AuthHandler{Signer: signer, Cookies: utils.CookieOptionsFor(config.IsProduction())},
		&handlers.ServiceHandler{Repo: svcRepo, Authz: gate, Stats: refresher},
		&handlers.ReviewHandler{Repo: revRepo, Authz: gate, Stats: refresher},
		&handlers.CategoryHandler{Repo: catRepo},
		&handlers.StatsHandler{Svc: statsService},
		&handlers.HealthHandler{Monitor: health},
		metrics.Handler(registry),
	)

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("Invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger, collector))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle, gate, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	stopHealth()
	worker.Shutdown()
	if err := taskClient.Close(); err != nil {
		logger.Warn("main: failed to close task client", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("main: failed to close Redis", zap.Error(err))
	}
	if err := db.Close(ctx); err != nil {
		logger.Error("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
