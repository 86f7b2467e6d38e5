package transitdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bebraradar/bebraradar/internal/models"
)

const tripColumns = `trip_id, route_id, service_id, start_time, COALESCE(vehicle_no, ''), COALESCE(shape_id, '')`

// ListTrips returns all trips ordered by identifier.
func (q *Queries) ListTrips(ctx context.Context) ([]models.Trip, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+tripColumns+` FROM trips ORDER BY trip_id`)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query trips: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

// TripByID returns one trip or ErrNotFound.
func (q *Queries) TripByID(ctx context.Context, id int64) (*models.Trip, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE trip_id = ?`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTrip inserts a trip and returns its assigned identifier. Referenced
// route, service and shape rows must already exist.
func (q *Queries) CreateTrip(ctx context.Context, t models.Trip) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO trips (route_id, service_id, start_time, vehicle_no, shape_id)
		VALUES (?, ?, ?, ?, ?);
	`, t.RouteID, t.ServiceID, formatTime(t.StartTime), nullString(t.VehicleNo), nullString(t.ShapeID))
	if err != nil {
		return 0, fmt.Errorf("transitdb: insert trip: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transitdb: insert trip: %w", err)
	}
	return id, nil
}

// ReplaceTrip rewrites an existing trip; a missing id is ErrNotFound.
func (q *Queries) ReplaceTrip(ctx context.Context, t models.Trip) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE trips SET route_id = ?, service_id = ?, start_time = ?, vehicle_no = ?, shape_id = ?
		WHERE trip_id = ?;
	`, t.RouteID, t.ServiceID, formatTime(t.StartTime), nullString(t.VehicleNo), nullString(t.ShapeID), t.ID)
	if err != nil {
		return fmt.Errorf("transitdb: update trip %d: %w", t.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transitdb: update trip %d: %w", t.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("trip %d: %w", t.ID, ErrNotFound)
	}
	return nil
}

// DeleteTrip removes a trip; missing is ErrNotFound. A trip still referenced
// by stop times, vehicle positions or events is ErrConflict.
func (q *Queries) DeleteTrip(ctx context.Context, id int64) error {
	var refs int
	err := q.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM stop_times WHERE trip_id = ?)
		     + (SELECT COUNT(*) FROM vehicle_positions_current WHERE trip_id = ?)
		     + (SELECT COUNT(*) FROM trip_events WHERE trip_id = ?)
	`, id, id, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("transitdb: count trip references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("trip %d is referenced and cannot be removed: %w", id, ErrConflict)
	}

	res, err := q.db.ExecContext(ctx, `DELETE FROM trips WHERE trip_id = ?`, id)
	if err != nil {
		return fmt.Errorf("transitdb: delete trip %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transitdb: delete trip %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("trip %d: %w", id, ErrNotFound)
	}
	return nil
}

// TripsForServices returns trips whose service is in serviceIDs. An empty
// set returns nil without issuing a query; an IN clause with no values is
// not a valid statement.
func (q *Queries) TripsForServices(ctx context.Context, serviceIDs []string) ([]models.Trip, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE service_id IN (` + placeholders(len(serviceIDs)) + `)`
	args := make([]any, len(serviceIDs))
	for i, id := range serviceIDs {
		args[i] = id
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query trips by services: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

// TripsForRouteAndServices narrows TripsForServices to one route. An
// unknown route simply matches no trips.
func (q *Queries) TripsForRouteAndServices(ctx context.Context, routeID string, serviceIDs []string) ([]models.Trip, error) {
	if len(serviceIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE route_id = ? AND service_id IN (` + placeholders(len(serviceIDs)) + `)`
	args := make([]any, 0, len(serviceIDs)+1)
	args = append(args, routeID)
	for _, id := range serviceIDs {
		args = append(args, id)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query trips by route and services: %w", err)
	}
	defer rows.Close()
	return collectTrips(rows)
}

func collectTrips(rows *sql.Rows) ([]models.Trip, error) {
	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var t models.Trip
	var startTime string
	err := row.Scan(&t.ID, &t.RouteID, &t.ServiceID, &startTime, &t.VehicleNo, &t.ShapeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, err
		}
		return models.Trip{}, fmt.Errorf("transitdb: scan trip: %w", err)
	}
	if t.StartTime, err = parseTime(startTime); err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
