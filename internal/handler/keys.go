package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/middleware"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/service"
)

type KeysHandler struct {
	svc *service.APIKeyService
}

func NewKeysHandler(svc *service.APIKeyService) *KeysHandler {
	return &KeysHandler{svc: svc}
}

// Get handles GET /api/users/:userId/keys
//
// Key material is always masked in responses; the raw keys never leave the
// server once stored.
func (h *KeysHandler) Get(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	keys, err := h.svc.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNoKeysStored) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "No API keys stored for this user")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load API keys")
	}

	return c.JSON(keys)
}

type putKeysRequest struct {
	YouTubeKey string `json:"youtubeKey"`
	GeminiKey  string `json:"geminiKey"`
}

// Put handles PUT /api/users/:userId/keys
func (h *KeysHandler) Put(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req putKeysRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON")
	}
	if req.YouTubeKey == "" && req.GeminiKey == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "At least one of youtubeKey or geminiKey is required")
	}

	keys, err := h.svc.Put(c.Context(), userID, req.YouTubeKey, req.GeminiKey)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store API keys")
	}

	return c.JSON(keys)
}

// Delete handles DELETE /api/users/:userId/keys
func (h *KeysHandler) Delete(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateUserID(c.Params("userId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Delete(c.Context(), userID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete API keys")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
