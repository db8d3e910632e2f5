package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/middleware"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/service"
)

type LeaderboardHandler struct {
	svc *service.LeaderboardService
}

func NewLeaderboardHandler(svc *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

// GetTop handles GET /api/leaderboard
func (h *LeaderboardHandler) GetTop(c fiber.Ctx) error {
	entries, err := h.svc.Top(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load leaderboard")
	}
	return c.JSON(fiber.Map{"entries": entries})
}

type submitScoreRequest struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Keyword string `json:"keyword"`
}

// PostScore handles POST /api/leaderboard
func (h *LeaderboardHandler) PostScore(c fiber.Ctx) error {
	var req submitScoreRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}

	entries, err := h.svc.Submit(c.Context(), req.Name, req.Score, req.Keyword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrNameTooLong),
			errors.Is(err, service.ErrBadScore):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", err.Error())
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit score")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entries": entries})
}
