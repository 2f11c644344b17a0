package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"train-freight-service/internal/ports"
)

// SQLite backed cache for computed least-time routes. Station sequences are
// stored as a ">"-joined string; an empty string records a no-path result.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Fetch cached routes for one origin and multiple destinations.
func (s *SqliteRouteCache) GetMany(
	ctx context.Context,
	networkKey string,
	origin string,
	destinations []string,
) (map[string]ports.RouteResult, error) {
	if s.DB == nil {
		return nil, errors.New("route cache: db is nil")
	}

	if origin == "" {
		return nil, errors.New("get route cache: origin must not be empty")
	}

	if len(destinations) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(destinations))
	ph := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	args := make([]any, 0, 2+len(uniq))
	args = append(args, networkKey, origin)
	for _, d := range uniq {
		args = append(args, d)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain
	// parameterized.
	q := fmt.Sprintf(`
	SELECT
        destination,
        stations,
        total_minutes
    FROM route_cache
    WHERE network_key = ?
        AND origin = ?
        AND destination IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.RouteResult, len(uniq))
	for rows.Next() {
		var dest, stations string
		var minutes uint
		if err := rows.Scan(&dest, &stations, &minutes); err != nil {
			return nil, fmt.Errorf("get route cache: scan rows: %w", err)
		}
		out[dest] = ports.RouteResult{
			Stations:     splitStations(stations),
			TotalMinutes: minutes,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get route cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many computed routes for a single origin.
func (s *SqliteRouteCache) PutMany(
	ctx context.Context,
	networkKey string,
	origin string,
	results map[string]ports.RouteResult,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if origin == "" {
		return errors.New("insert route cache: origin must not be empty")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert route cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO route_cache (
        network_key,
        origin,
        destination,
        stations,
        total_minutes
    )
    VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("insert route cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if dest == "" {
			return fmt.Errorf("insert route cache: empty destination key")
		}

		if _, err := stmt.ExecContext(ctx, networkKey, origin, dest, joinStations(r.Stations), r.TotalMinutes); err != nil {
			return fmt.Errorf("insert route cache dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert route cache commit: %w", err)
	}

	return nil
}

func joinStations(stations []string) string {
	return strings.Join(stations, ">")
}

func splitStations(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ">")
}
