// models/models.go
package models

import "time"

// MatchRecord is one finished (or abandoned) game, written to the
// match-history store after the room is torn down.
type MatchRecord struct {
	RoomCode  string        `json:"room_code"`
	GameType  string        `json:"game_type"`
	Players   []PlayerScore `json:"players"`
	WinnerID  string        `json:"winner_id,omitempty"`
	Draw      bool          `json:"draw"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// PlayerScore is one player's line in a match record.
type PlayerScore struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Won      bool   `json:"won"`
}

// PlayerStats aggregates a display name's recorded history.
type PlayerStats struct {
	Name       string `json:"name"`
	TotalGames int    `json:"total_games"`
	Wins       int    `json:"wins"`
	TotalScore int    `json:"total_score"`
}
