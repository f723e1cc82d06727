// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/partyserver/models"
)

// GormPostgreSQL is the gorm-backed implementation of Database.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormMatchRecord{}, &models.GormPlayerScore{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) SaveMatchRecord(record *models.MatchRecord) error {
	row := models.GormMatchRecord{
		RoomCode:   record.RoomCode,
		GameType:   record.GameType,
		WinnerID:   record.WinnerID,
		Draw:       record.Draw,
		DurationMS: record.Duration.Milliseconds(),
	}
	for _, player := range record.Players {
		row.Players = append(row.Players, models.GormPlayerScore{
			PlayerID: player.PlayerID,
			Name:     player.Name,
			Score:    player.Score,
			Won:      player.Won,
		})
	}
	return g.db.Create(&row).Error
}

func (g *GormPostgreSQL) GetPlayerStats(name string) (*models.PlayerStats, error) {
	type row struct {
		TotalGames int
		TotalScore int
		Wins       int
	}
	var result row

	err := g.db.Model(&models.GormPlayerScore{}).
		Select("COUNT(*) AS total_games, COALESCE(SUM(score),0) AS total_score, COALESCE(SUM(CASE WHEN won THEN 1 ELSE 0 END),0) AS wins").
		Where("name = ?", name).
		Scan(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	if result.TotalGames == 0 {
		return nil, ErrRecordNotFound
	}

	return &models.PlayerStats{
		Name:       name,
		TotalGames: result.TotalGames,
		TotalScore: result.TotalScore,
		Wins:       result.Wins,
	}, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
