// models/gorm_models.go
package models

import "gorm.io/gorm"

// GormMatchRecord mirrors MatchRecord for the gorm backend.
type GormMatchRecord struct {
	gorm.Model
	RoomCode   string `gorm:"index;not null"`
	GameType   string `gorm:"not null"`
	WinnerID   string
	Draw       bool
	DurationMS int64             `gorm:"default:0"`
	Players    []GormPlayerScore `gorm:"foreignKey:MatchRecordID"`
}

// GormPlayerScore is one player's line, kept in its own table so stats
// can be aggregated by name without unpacking JSON.
type GormPlayerScore struct {
	gorm.Model
	MatchRecordID uint   `gorm:"index;not null"`
	PlayerID      string `gorm:"not null"`
	Name          string `gorm:"index;not null"`
	Score         int    `gorm:"default:0"`
	Won           bool   `gorm:"default:false"`
}
