package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"treasure_hunter_bot/internal/api"
	"treasure_hunter_bot/internal/cache"
	"treasure_hunter_bot/internal/repository"
	"treasure_hunter_bot/internal/service"
	"treasure_hunter_bot/internal/worker"
	"treasure_hunter_bot/pkg/auth"
	"treasure_hunter_bot/pkg/logger"
	"treasure_hunter_bot/pkg/metrics"
	"treasure_hunter_bot/pkg/ratelimit"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.Migrate(ctx); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	catalog, err := LoadAchievementCatalog(cfg.Achievements.CatalogFile)
	if err != nil {
		zapLogger.Fatal("Failed to load achievement catalog", zap.Error(err))
	}
	if err := repo.UpsertAchievements(ctx, catalog); err != nil {
		zapLogger.Fatal("Failed to seed achievements", zap.Error(err))
	}

	var lbCache service.LeaderboardCache
	if cfg.Redis.Enabled {
		c, err := cache.NewLeaderboardCache(cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			zapLogger.Fatal("Failed to initialize leaderboard cache", zap.Error(err))
		}
		defer c.Close()
		lbCache = c
	}

	feed := service.NewActivityFeed()
	evaluator := service.NewAchievementEvaluator(repo, repo, service.DefaultSpecialPredicates())

	hunterService := service.NewHunterService(repo)
	findService := service.NewFindService(repo, cfg.Scoring, evaluator, feed)
	leaderboardService := service.NewLeaderboardService(repo, lbCache)

	sched, err := worker.StartSnapshotScheduler(cfg.Snapshot, leaderboardService)
	if err != nil {
		zapLogger.Fatal("Failed to start snapshot scheduler", zap.Error(err))
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			zapLogger.Error("Failed to shut down snapshot scheduler", zap.Error(err))
		}
	}()

	telegramAuth := auth.NewTelegramAuth(cfg.TelegramAuth.TelegramBotToken, cfg.TelegramAuth.DebugMode)
	governor := ratelimit.New(cfg.RateLimit.MaxRequestsPerMinute)

	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	corsConfig.AllowHeaders = []string{"*"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour

	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	a := router.Group("/api/v1")
	api.NewHunterRoutes(a, hunterService, findService, telegramAuth)
	api.NewFindRoutes(a, findService, telegramAuth, governor)
	api.NewLeaderboardRoutes(a, leaderboardService, telegramAuth)
	api.NewActivityRoutes(a, findService, feed, telegramAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
