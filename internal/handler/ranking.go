package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/middleware"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/service"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/youtube"
)

type RankingHandler struct {
	svc *service.RankingService
}

func NewRankingHandler(svc *service.RankingService) *RankingHandler {
	return &RankingHandler{svc: svc}
}

// GetRankings handles GET /api/rankings
//
// Query params: kind (videos|channels), country, category, excluded
// (comma-separated category ids), format (all|long|shorts), limit.
func (h *RankingHandler) GetRankings(c fiber.Ctx) error {
	q, errResp := parseRankingQuery(c)
	if q == nil {
		return errResp
	}

	result, err := h.svc.FetchRanking(c.Context(), *q)
	if err != nil {
		return upstreamError(c, err, "Failed to fetch rankings")
	}

	if result.FromCache {
		Metrics.CacheHits.Inc()
	} else {
		Metrics.CacheMisses.Inc()
	}

	return c.JSON(result)
}

// parseRankingQuery validates the ranking query parameters. On failure it
// writes the 400 response and returns a nil query; callers must check the
// query pointer, not the error, because c.JSON reports nil once the error
// body is written.
func parseRankingQuery(c fiber.Ctx) (*model.RankingQuery, error) {
	kind := model.RankingKind(fiber.Query[string](c, "kind", string(model.KindVideos)))
	if kind != model.KindVideos && kind != model.KindChannels {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "kind must be videos or channels")
	}

	country, errMsg := middleware.ValidateCountry(fiber.Query[string](c, "country"))
	if errMsg != "" {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	category, errMsg := middleware.ValidateCategory(fiber.Query[string](c, "category"))
	if errMsg != "" {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	excluded, errMsg := middleware.ValidateExcluded(fiber.Query[string](c, "excluded"))
	if errMsg != "" {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	format, errMsg := middleware.ValidateFormat(fiber.Query[string](c, "format"))
	if errMsg != "" {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	limit, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "limit"), service.DefaultRankingLimit, service.MaxRankingLimit)
	if errMsg != "" {
		return nil, middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	return &model.RankingQuery{
		Kind:               kind,
		Country:            country,
		Category:           category,
		ExcludedCategories: excluded,
		Format:             format,
		Limit:              limit,
		ShortsThresholdSec: model.ShortsThresholdRanking,
	}, nil
}

// upstreamError maps classified YouTube API errors to HTTP responses and
// falls back to a 500 for everything else.
func upstreamError(c fiber.Ctx, err error, fallbackMsg string) error {
	var apiErr *youtube.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.HTTPStatus()).JSON(fiber.Map{
			"error": fiber.Map{
				"code":       string(apiErr.Kind),
				"message":    apiErr.Message,
				"resolution": apiErr.Resolution,
			},
		})
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallbackMsg)
}
