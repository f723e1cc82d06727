// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/wfunc/partyserver/models"
)

// PostgreSQL is the plain database/sql implementation of Database.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS match_records (
			id          SERIAL PRIMARY KEY,
			room_code   TEXT NOT NULL,
			game_type   TEXT NOT NULL,
			winner_id   TEXT NOT NULL DEFAULT '',
			draw        BOOLEAN NOT NULL DEFAULT FALSE,
			duration_ms BIGINT NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS player_scores (
			id        SERIAL PRIMARY KEY,
			match_id  INTEGER NOT NULL REFERENCES match_records(id),
			player_id TEXT NOT NULL,
			name      TEXT NOT NULL,
			score     INTEGER NOT NULL DEFAULT 0,
			won       BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_player_scores_name ON player_scores(name)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgreSQL) SaveMatchRecord(record *models.MatchRecord) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var matchID int
	err = tx.QueryRow(
		`INSERT INTO match_records (room_code, game_type, winner_id, draw, duration_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		record.RoomCode, record.GameType, record.WinnerID, record.Draw,
		record.Duration.Milliseconds(), record.CreatedAt,
	).Scan(&matchID)
	if err != nil {
		return err
	}

	for _, player := range record.Players {
		_, err = tx.Exec(
			`INSERT INTO player_scores (match_id, player_id, name, score, won)
			 VALUES ($1, $2, $3, $4, $5)`,
			matchID, player.PlayerID, player.Name, player.Score, player.Won,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (p *PostgreSQL) GetPlayerStats(name string) (*models.PlayerStats, error) {
	stats := &models.PlayerStats{Name: name}

	err := p.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(score), 0),
		        COALESCE(SUM(CASE WHEN won THEN 1 ELSE 0 END), 0)
		 FROM player_scores WHERE name = $1`,
		name,
	).Scan(&stats.TotalGames, &stats.TotalScore, &stats.Wins)
	if err != nil {
		return nil, err
	}

	if stats.TotalGames == 0 {
		return nil, ErrRecordNotFound
	}
	return stats, nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
