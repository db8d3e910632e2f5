package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/handler"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Ranking     *handler.RankingHandler
	Outlier     *handler.OutlierHandler
	Insight     *handler.InsightHandler
	Leaderboard *handler.LeaderboardHandler
	Keys        *handler.KeysHandler
	Health      *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (outside the API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	rankingLimit := middleware.NewRankingRateLimiter().Handler()
	outlierLimit := middleware.NewOutlierRateLimiter().Handler()
	insightLimit := middleware.NewInsightRateLimiter().Handler()
	submitLimit := middleware.NewLeaderboardSubmitRateLimiter().Handler()
	keysLimit := middleware.NewKeysRateLimiter().Handler()

	// Ranking routes
	api.Get("/rankings", h.Ranking.GetRankings, rankingLimit)

	// Outlier routes
	api.Get("/outliers", h.Outlier.GetOutliers, outlierLimit)

	// Insight routes
	api.Post("/insights/ranking", h.Insight.PostRankingInsight, insightLimit)

	// Leaderboard routes
	api.Get("/leaderboard", h.Leaderboard.GetTop)
	api.Post("/leaderboard", h.Leaderboard.PostScore, submitLimit)

	// API key routes
	api.Get("/users/:userId/keys", h.Keys.Get, keysLimit)
	api.Put("/users/:userId/keys", h.Keys.Put, keysLimit)
	api.Delete("/users/:userId/keys", h.Keys.Delete, keysLimit)
}
