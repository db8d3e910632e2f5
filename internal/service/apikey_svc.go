package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/repository"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/pkg/hash"
)

var ErrNoKeysStored = errors.New("no API keys stored for user")

// APIKeyService stores per-user YouTube/Gemini keys. User ids are hashed
// before they reach the repository, and responses only ever expose masked
// key material.
type APIKeyService struct {
	repo *repository.APIKeyRepo
}

func NewAPIKeyService(repo *repository.APIKeyRepo) *APIKeyService {
	return &APIKeyService{repo: repo}
}

// Get returns the masked key set for a user.
func (s *APIKeyService) Get(ctx context.Context, userID string) (*model.APIKeySet, error) {
	keys, err := s.repo.FindByUserHash(ctx, hash.HashUserID(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoKeysStored
		}
		return nil, err
	}
	return keys.Masked(), nil
}

// Put stores (or replaces) the key set for a user and returns the masked
// result. Blank fields clear the corresponding key.
func (s *APIKeyService) Put(ctx context.Context, userID, youtubeKey, geminiKey string) (*model.APIKeySet, error) {
	keys := &model.APIKeySet{
		UserHash:   hash.HashUserID(userID),
		YouTubeKey: strings.TrimSpace(youtubeKey),
		GeminiKey:  strings.TrimSpace(geminiKey),
	}
	if err := s.repo.Upsert(ctx, keys); err != nil {
		return nil, err
	}
	return keys.Masked(), nil
}

// Delete removes a user's stored keys.
func (s *APIKeyService) Delete(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, hash.HashUserID(userID))
}
