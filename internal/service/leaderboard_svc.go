package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/cache"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/repository"
)

const leaderboardCacheKey = "leaderboard"

// MaxLeaderboardNameLen bounds the display name recorded with a score.
const MaxLeaderboardNameLen = 24

var (
	ErrNameRequired = errors.New("a display name is required")
	ErrNameTooLong  = errors.New("display name is too long")
	ErrBadScore     = errors.New("score must be positive")
)

// LeaderboardService serves the keyword-game top-10 board. Reads go
// through the session cache; submits invalidate it.
type LeaderboardService struct {
	repo  *repository.LeaderboardRepo
	cache *cache.Cache
	now   func() time.Time
}

func NewLeaderboardService(repo *repository.LeaderboardRepo, c *cache.Cache) *LeaderboardService {
	return &LeaderboardService{repo: repo, cache: c, now: time.Now}
}

// Top returns the current board, cache-aside.
func (s *LeaderboardService) Top(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var cached []model.LeaderboardEntry
	if s.cache.GetSession(ctx, leaderboardCacheKey, &cached) {
		return cached, nil
	}

	entries, err := s.repo.Top(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSession(ctx, leaderboardCacheKey, entries); err != nil {
		log.Printf("leaderboard: cache set error: %v", err)
	}
	return entries, nil
}

// Submit validates and records a score, returning the refreshed board.
func (s *LeaderboardService) Submit(ctx context.Context, name string, score int, keyword string) ([]model.LeaderboardEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > MaxLeaderboardNameLen {
		return nil, ErrNameTooLong
	}
	if score <= 0 {
		return nil, ErrBadScore
	}

	entry := model.LeaderboardEntry{
		Name:     name,
		Score:    score,
		Keyword:  strings.TrimSpace(keyword),
		PlayedOn: s.now().UTC(),
	}

	qualifies, err := s.repo.Qualifies(ctx, score)
	if err != nil {
		return nil, err
	}
	if qualifies {
		if err := s.repo.Submit(ctx, entry); err != nil {
			return nil, err
		}
		// Drop the cached board so the next read sees the new entry.
		if err := s.cache.DeleteSession(ctx, leaderboardCacheKey); err != nil {
			log.Printf("leaderboard: cache invalidate error: %v", err)
		}
	}

	return s.repo.Top(ctx)
}
