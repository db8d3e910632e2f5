package model

import "time"

// LeaderboardSize is the fixed cap on stored leaderboard entries.
const LeaderboardSize = 10

// LeaderboardEntry is one row of the keyword-game leaderboard,
// kept sorted by score descending and capped at LeaderboardSize.
type LeaderboardEntry struct {
	Name     string    `json:"name"`
	Score    int       `json:"score"`
	Keyword  string    `json:"keyword"`
	PlayedOn time.Time `json:"playedOn"`
}
