package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
)

type APIKeyRepo struct {
	pool *pgxpool.Pool
}

func NewAPIKeyRepo(pool *pgxpool.Pool) *APIKeyRepo {
	return &APIKeyRepo{pool: pool}
}

// FindByUserHash returns the key set stored for a hashed user id.
// Returns pgx.ErrNoRows when the user has no stored keys.
func (r *APIKeyRepo) FindByUserHash(ctx context.Context, userHash string) (*model.APIKeySet, error) {
	query := `
		SELECT user_hash, youtube_key, gemini_key, last_updated
		FROM user_api_keys
		WHERE user_hash = $1`

	var keys model.APIKeySet
	err := r.pool.QueryRow(ctx, query, userHash).Scan(
		&keys.UserHash, &keys.YouTubeKey, &keys.GeminiKey, &keys.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &keys, nil
}

// Upsert stores or replaces the key set for a hashed user id.
func (r *APIKeyRepo) Upsert(ctx context.Context, keys *model.APIKeySet) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_api_keys (user_hash, youtube_key, gemini_key, last_updated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_hash) DO UPDATE
		SET youtube_key = EXCLUDED.youtube_key,
		    gemini_key = EXCLUDED.gemini_key,
		    last_updated = NOW()`,
		keys.UserHash, keys.YouTubeKey, keys.GeminiKey)
	return err
}

// Delete removes the key set for a hashed user id.
func (r *APIKeyRepo) Delete(ctx context.Context, userHash string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_api_keys WHERE user_hash = $1`, userHash)
	return err
}
