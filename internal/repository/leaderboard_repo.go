package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
)

type LeaderboardRepo struct {
	pool *pgxpool.Pool
}

func NewLeaderboardRepo(pool *pgxpool.Pool) *LeaderboardRepo {
	return &LeaderboardRepo{pool: pool}
}

// Top returns the leaderboard sorted by score descending, at most
// model.LeaderboardSize rows.
func (r *LeaderboardRepo) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	query := `
		SELECT name, score, keyword, played_on
		FROM game_leaderboard
		ORDER BY score DESC, played_on ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, model.LeaderboardSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Score, &e.Keyword, &e.PlayedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	return entries, rows.Err()
}

// Submit inserts a score and prunes rows beyond the fixed cap in one
// transaction, so the table never grows past LeaderboardSize.
func (r *LeaderboardRepo) Submit(ctx context.Context, e model.LeaderboardEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO game_leaderboard (name, score, keyword, played_on)
		VALUES ($1, $2, $3, $4)`,
		e.Name, e.Score, e.Keyword, e.PlayedOn)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM game_leaderboard
		WHERE id NOT IN (
			SELECT id FROM game_leaderboard
			ORDER BY score DESC, played_on ASC
			LIMIT $1
		)`, model.LeaderboardSize)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Qualifies reports whether a score would make the current board. Useful
// for skipping the write when the board is full of better scores.
func (r *LeaderboardRepo) Qualifies(ctx context.Context, score int) (bool, error) {
	var count int
	var lowest int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(MIN(score), 0) FROM game_leaderboard`).Scan(&count, &lowest)
	if err != nil {
		return false, err
	}
	if count < model.LeaderboardSize {
		return true, nil
	}
	return score > lowest, nil
}
