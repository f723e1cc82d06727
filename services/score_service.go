// services/score_service.go
package services

import (
	"time"

	"github.com/wfunc/partyserver/logger"
	"github.com/wfunc/partyserver/models"
	"github.com/wfunc/partyserver/persistence"
	"github.com/wfunc/partyserver/room"
)

// ScoreService records finished matches and serves player stats. With a
// nil database every call is a no-op, which is how the server runs when
// no match-history backend is configured.
type ScoreService struct {
	db persistence.Database
}

func NewScoreService(db persistence.Database) *ScoreService {
	return &ScoreService{db: db}
}

func (s *ScoreService) Enabled() bool {
	return s.db != nil
}

// RecordMatch writes the final state of a torn-down room. The write
// runs on its own goroutine; recording must never delay or block game
// traffic, and a failed write only logs.
func (s *ScoreService) RecordMatch(state room.GameState, winnerID string, draw bool, startedAt time.Time) {
	if s.db == nil {
		return
	}

	record := &models.MatchRecord{
		RoomCode:  state.Room,
		GameType:  state.GameType,
		WinnerID:  winnerID,
		Draw:      draw,
		Duration:  time.Since(startedAt),
		CreatedAt: time.Now(),
	}
	for _, p := range state.Players {
		record.Players = append(record.Players, models.PlayerScore{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
			Won:      p.ID == winnerID,
		})
	}

	go func() {
		if err := s.db.SaveMatchRecord(record); err != nil {
			logger.Log.Errorf("Failed to record match for room %s: %v", record.RoomCode, err)
		}
	}()
}

func (s *ScoreService) PlayerStats(name string) (*models.PlayerStats, error) {
	if s.db == nil {
		return nil, persistence.ErrRecordNotFound
	}
	return s.db.GetPlayerStats(name)
}
