package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"train-freight-service/internal/platform/obs"
	"train-freight-service/internal/ports"
)

// SQLRouteCache is a Postgres-backed cache for computed least-time routes.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch cached routes for one origin and multiple destinations.
func (s *SQLRouteCache) GetMany(
	ctx context.Context,
	networkKey string,
	origin string,
	destinations []string,
) (_ map[string]ports.RouteResult, err error) {
	defer obs.Time(ctx, "route.cache.GetMany")(&err)

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
	for _, d := range destinations {
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		uniq = append(uniq, d)
	}

	if len(uniq) == 0 {
		return map[string]ports.RouteResult{}, nil
	}

	q := `
	SELECT destination, stations, total_minutes
    FROM route_cache
    WHERE network_key = $1
        AND origin = $2
        AND destination = ANY($3::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, networkKey, origin, uniq)
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
func (s *SQLRouteCache) PutMany(
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
	INSERT INTO route_cache (network_key, origin, destination, stations, total_minutes)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (network_key, origin, destination) DO UPDATE
	SET stations = EXCLUDED.stations,
		total_minutes = EXCLUDED.total_minutes;
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
