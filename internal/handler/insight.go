package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/service"
)

type InsightHandler struct {
	insights *service.InsightService
	rankings *service.RankingService
}

func NewInsightHandler(insights *service.InsightService, rankings *service.RankingService) *InsightHandler {
	return &InsightHandler{insights: insights, rankings: rankings}
}

// PostRankingInsight handles POST /api/insights/ranking
//
// Fetches (or cache-loads) the ranking described by the same query
// parameters GET /api/rankings takes, then
// asks the LLM for a summary. Generation failures and timeouts degrade to a
// pending placeholder with HTTP 200 — insight delivery is best effort.
func (h *InsightHandler) PostRankingInsight(c fiber.Ctx) error {
	q, errResp := parseRankingQuery(c)
	if q == nil {
		return errResp
	}

	result, err := h.rankings.FetchRanking(c.Context(), *q)
	if err != nil {
		return upstreamError(c, err, "Failed to fetch ranking for analysis")
	}

	insight := h.insights.RankingInsight(c.Context(), result)
	if insight.Pending {
		Metrics.InsightFallbacks.Inc()
	}

	return c.JSON(fiber.Map{
		"insight": insight,
		"query":   q,
	})
}
