package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"train-freight-service/internal/adapters/cache"
	"train-freight-service/internal/api"
	"train-freight-service/internal/domain"
	"train-freight-service/internal/platform/db"
	"train-freight-service/internal/ports"
	"train-freight-service/internal/scenario"
)

// main is the application composition root. It builds the world, optionally
// seeds it from a scenario file, wires the route cache behind its port, and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	scenarioPath := os.Getenv("SCENARIO_PATH")
	cacheDriver := getEnv("ROUTE_CACHE_DRIVER", "sqlite")

	world := domain.NewWorld()

	if strings.TrimSpace(scenarioPath) != "" {
		sc, err := scenario.Load(scenarioPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := sc.Apply(world); err != nil {
			log.Fatal(err)
		}
		log.Printf("scenario loaded path=%s stations=%d trains=%d packages=%d",
			scenarioPath, len(sc.Stations), len(sc.Trains), len(sc.Packages))
	}

	routeCache, closeDB, err := openRouteCache(cacheDriver)
	if err != nil {
		log.Fatal(err)
	}
	if closeDB != nil {
		defer closeDB()
	}

	router := api.NewRouter(world, routeCache)

	// Delivery runs on dense networks dominate response time; the write
	// timeout budgets for exhaustive route enumeration.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openRouteCache selects the route cache backend: "sqlite" (default),
// "postgres", or "off" to disable warming entirely.
func openRouteCache(driver string) (ports.RouteCache, func() error, error) {
	switch driver {
	case "off":
		return nil, nil, nil

	case "sqlite":
		dbPath := getEnv("DB_PATH", "data/routes.db")
		conn, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open route cache: open sqlite database %q: %w", dbPath, err)
		}
		if err := conn.Ping(); err != nil {
			return nil, nil, fmt.Errorf("open route cache: verify sqlite connection to %q: %w", dbPath, err)
		}
		if err := cache.InitSchema(conn); err != nil {
			return nil, nil, err
		}
		return cache.NewSqliteRouteCache(conn), conn.Close, nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, nil, fmt.Errorf("open route cache: DATABASE_URL is required for the postgres driver")
		}
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(conn); err != nil {
			return nil, nil, err
		}
		return cache.NewSQLRouteCache(conn), conn.Close, nil

	default:
		return nil, nil, fmt.Errorf("open route cache: unknown driver %q", driver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
