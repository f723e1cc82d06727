// persistence/interface.go
package persistence

import (
	"errors"

	"github.com/wfunc/partyserver/models"
)

// Database is the match-history store. Live rooms are memory-only;
// this records only finished games and never feeds state back into a
// running session.
type Database interface {
	SaveMatchRecord(record *models.MatchRecord) error
	GetPlayerStats(name string) (*models.PlayerStats, error)
	Close() error
}

var ErrRecordNotFound = errors.New("record not found")
