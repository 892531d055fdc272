package postgres

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"venue-console/internal/observability"
)

// Connect opens a PostgreSQL pool and verifies it with a ping.
func Connect(dbURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// StartPoolStatsReporter exports connection-pool gauges until stop is called.
func StartPoolStatsReporter(db *sql.DB, interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := db.Stats()
				observability.DBConnectionsOpen.Set(float64(stats.OpenConnections))
				observability.DBConnectionsInUse.Set(float64(stats.InUse))
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
