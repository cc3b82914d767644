// Package database opens the optional GORM connection backing the remote
// catalogue.
//
// MySQL is the production driver; SQLite serves local development and tests.
// Connect pings the database before returning so that callers can fall back to
// configuration-only remotes when it is unreachable.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Remote catalogue disabled", zap.Error(err))
//	}
package database
