package main

import (
	"github.com/wfunc/partyserver/config"
	"github.com/wfunc/partyserver/logger"
	"github.com/wfunc/partyserver/persistence"
	"github.com/wfunc/partyserver/server"
)

func main() {
	logger.Init()
	defer logger.Sync()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load config: %v", err)
	}

	db := openDatabase(cfg)
	if db != nil {
		defer db.Close()
	}

	gameServer := server.NewGameServer(cfg, db)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Game server exited: %v", err)
	}
}

// openDatabase returns nil when no match-history backend is configured;
// the server then runs with recording disabled.
func openDatabase(cfg *config.Config) persistence.Database {
	pg := cfg.Database.Postgres

	switch cfg.Database.Driver {
	case "postgres":
		db, err := persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		logger.Log.Info("Match history enabled (database/sql)")
		return db
	case "gorm":
		db, err := persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
		if err != nil {
			logger.Log.Fatalf("Failed to connect to PostgreSQL via gorm: %v", err)
		}
		logger.Log.Info("Match history enabled (gorm)")
		return db
	case "":
		logger.Log.Info("Match history disabled")
		return nil
	default:
		logger.Log.Fatalf("Unknown database driver %q", cfg.Database.Driver)
		return nil
	}
}
