package transitdb

import (
	"database/sql"
	"fmt"
)

// createSchema creates all tables and indexes inside one transaction.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("transitdb: begin schema transaction: %w", err)
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS routes (
			route_id TEXT PRIMARY KEY,
			description TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS stops (
			stop_id TEXT PRIMARY KEY,
			stop_name TEXT NOT NULL,
			stop_lat REAL,
			stop_lon REAL
		);`,
		`CREATE TABLE IF NOT EXISTS calendar (
			service_id TEXT PRIMARY KEY,
			monday INTEGER NOT NULL,
			tuesday INTEGER NOT NULL,
			wednesday INTEGER NOT NULL,
			thursday INTEGER NOT NULL,
			friday INTEGER NOT NULL,
			saturday INTEGER NOT NULL,
			sunday INTEGER NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS shapes (
			shape_id TEXT PRIMARY KEY
		);`,
		`CREATE TABLE IF NOT EXISTS shape_points (
			shape_id TEXT NOT NULL,
			point_sequence INTEGER NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL,
			PRIMARY KEY (shape_id, point_sequence),
			FOREIGN KEY (shape_id) REFERENCES shapes(shape_id)
		);`,
		`CREATE TABLE IF NOT EXISTS trips (
			trip_id INTEGER PRIMARY KEY AUTOINCREMENT,
			route_id TEXT NOT NULL,
			service_id TEXT NOT NULL,
			start_time TEXT NOT NULL,
			vehicle_no TEXT,
			shape_id TEXT,
			FOREIGN KEY (route_id) REFERENCES routes(route_id),
			FOREIGN KEY (service_id) REFERENCES calendar(service_id),
			FOREIGN KEY (shape_id) REFERENCES shapes(shape_id)
		);`,
		`CREATE TABLE IF NOT EXISTS stop_times (
			trip_id INTEGER NOT NULL,
			stop_sequence INTEGER NOT NULL,
			stop_id TEXT NOT NULL,
			arrival_time INTEGER NOT NULL,
			departure_time INTEGER NOT NULL,
			PRIMARY KEY (trip_id, stop_sequence),
			FOREIGN KEY (trip_id) REFERENCES trips(trip_id),
			FOREIGN KEY (stop_id) REFERENCES stops(stop_id)
		);`,
		`CREATE TABLE IF NOT EXISTS vehicle_positions_current (
			vehicle_no TEXT PRIMARY KEY,
			trip_id INTEGER NOT NULL,
			ts TEXT NOT NULL,
			last_stop_ts TEXT NOT NULL,
			lat REAL,
			lon REAL,
			speed_mps REAL,
			bearing_deg REAL,
			gps_accuracy_m REAL,
			FOREIGN KEY (trip_id) REFERENCES trips(trip_id)
		);`,
		`CREATE TABLE IF NOT EXISTS trip_events (
			event_id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_kind TEXT NOT NULL,
			trip_id INTEGER NOT NULL,
			user_id INTEGER,
			ts TEXT NOT NULL,
			lat REAL,
			lon REAL,
			gps_accuracy_m REAL,
			event_type TEXT,
			reported_time TEXT,
			estimated_delay INTEGER,
			FOREIGN KEY (trip_id) REFERENCES trips(trip_id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_trips_route_id ON trips(route_id);`,
		`CREATE INDEX IF NOT EXISTS idx_trips_service_id ON trips(service_id);`,
		`CREATE INDEX IF NOT EXISTS idx_stop_times_stop_id ON stop_times(stop_id);`,
		`CREATE INDEX IF NOT EXISTS idx_trip_events_kind_ts ON trip_events(event_kind, ts);`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("transitdb: create schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transitdb: commit schema transaction: %w", err)
	}
	return nil
}
