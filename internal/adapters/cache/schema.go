package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the route cache table if it is missing. The statement
// is portable across the SQLite and Postgres backends.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        network_key TEXT NOT NULL,
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        stations TEXT NOT NULL,
        total_minutes INTEGER NOT NULL,
        PRIMARY KEY (network_key, origin, destination)
    );
	`

	if _, err := db.Exec(createRouteCacheQuery); err != nil {
		return fmt.Errorf("init schema: create route_cache: %w", err)
	}

	return nil
}
