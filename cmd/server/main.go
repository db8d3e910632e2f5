package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/cache"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/config"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/db"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/gemini"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/handler"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/middleware"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/repository"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/router"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/service"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/youtube"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "analyzer-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	appCache, rdb := cache.NewFromRedisURL(cfg.RedisURL)

	// Session entries do not survive a restart, and any daily entries left
	// from previous days are reclaimed up front.
	if err := appCache.ClearSession(ctx); err != nil {
		log.Printf("failed to clear session cache: %v", err)
	}
	if removed, err := appCache.SweepDaily(ctx); err == nil && removed > 0 {
		log.Printf("swept %d stale daily cache entries at startup", removed)
	}

	if cfg.YouTubeAPIKey == "" {
		log.Fatal("YOUTUBE_API_KEY is required")
	}
	yt, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("failed to create youtube client: %v", err)
	}

	var insightGen service.InsightGenerator
	if cfg.GeminiAPIKey != "" {
		gem, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("gemini client unavailable, insights degrade to placeholders: %v", err)
		} else {
			insightGen = gem
		}
	} else {
		log.Println("GEMINI_API_KEY not set, insights degrade to placeholders")
	}

	rankingSvc := service.NewRankingService(yt, yt, appCache)
	outlierSvc := service.NewOutlierService(yt, yt)
	insightSvc := service.NewInsightService(insightGen, cfg.InsightTimeout)
	leaderboardSvc := service.NewLeaderboardService(repository.NewLeaderboardRepo(pool), appCache)
	keysSvc := service.NewAPIKeyService(repository.NewAPIKeyRepo(pool))

	handler.InitMetrics(pool)

	sweeper := service.NewSweepWorker(appCache, cfg.SweepInterval)
	sweeper.OnRemoved = func(n int) {
		handler.Metrics.SweepRemoved.Add(float64(n))
	}
	go sweeper.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Analyzer API",
		ServerHeader: "Analyzer",
	})

	router.Setup(app, &router.Handlers{
		Ranking:     handler.NewRankingHandler(rankingSvc),
		Outlier:     handler.NewOutlierHandler(outlierSvc),
		Insight:     handler.NewInsightHandler(insightSvc, rankingSvc),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc),
		Keys:        handler.NewKeysHandler(keysSvc),
		Health:      handler.NewHealthHandler(pool, rdb),
	}, cfg.CORSOrigins)

	go func() {
		log.Printf("Analyzer Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
