package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/middleware"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/service"
)

type OutlierHandler struct {
	svc *service.OutlierService
}

func NewOutlierHandler(svc *service.OutlierService) *OutlierHandler {
	return &OutlierHandler{svc: svc}
}

// GetOutliers handles GET /api/outliers?channelId=X&multiplier=3&sample=30
func (h *OutlierHandler) GetOutliers(c fiber.Ctx) error {
	channelID, errMsg := middleware.ValidateChannelID(fiber.Query[string](c, "channelId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	multiplier := service.DefaultOutlierMultiplier
	if raw := fiber.Query[string](c, "multiplier"); raw != "" {
		m, err := strconv.ParseFloat(raw, 64)
		if err != nil || m < 1.0 || m > 100.0 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "multiplier must be a number between 1 and 100")
		}
		multiplier = m
	}

	sample, errMsg := middleware.ValidateLimit(fiber.Query[string](c, "sample"), service.DefaultOutlierSample, 50)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	result, err := h.svc.FindOutliers(c.Context(), channelID, multiplier, sample)
	if err != nil {
		if errors.Is(err, service.ErrEmptyChannel) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel has no uploads to analyze")
		}
		return upstreamError(c, err, "Failed to analyze channel uploads")
	}

	return c.JSON(result)
}
