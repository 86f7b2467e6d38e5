package transitdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bebraradar/bebraradar/internal/models"
)

// ListStops returns all stops ordered by identifier.
func (q *Queries) ListStops(ctx context.Context) ([]models.Stop, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT stop_id, stop_name, stop_lat, stop_lon FROM stops ORDER BY stop_id`)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query stops: %w", err)
	}
	defer rows.Close()

	var stops []models.Stop
	for rows.Next() {
		s, err := scanStop(rows)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

// StopByID returns one stop or ErrNotFound.
func (q *Queries) StopByID(ctx context.Context, id string) (*models.Stop, error) {
	row := q.db.QueryRowContext(ctx, `SELECT stop_id, stop_name, stop_lat, stop_lon FROM stops WHERE stop_id = ?`, id)
	s, err := scanStop(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stop %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateStop inserts a new stop; an existing id is ErrConflict.
func (q *Queries) CreateStop(ctx context.Context, s models.Stop) error {
	if _, err := q.StopByID(ctx, s.ID); err == nil {
		return fmt.Errorf("stop %s: %w", s.ID, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return q.writeStop(ctx, s)
}

// ReplaceStop upserts the stop under the given id.
func (q *Queries) ReplaceStop(ctx context.Context, s models.Stop) error {
	return q.writeStop(ctx, s)
}

func (q *Queries) writeStop(ctx context.Context, s models.Stop) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO stops (stop_id, stop_name, stop_lat, stop_lon) VALUES (?, ?, ?, ?)`,
		s.ID, s.Name, nullFloat(s.Lat), nullFloat(s.Lon),
	)
	if err != nil {
		return fmt.Errorf("transitdb: write stop %s: %w", s.ID, err)
	}
	return nil
}

// DeleteStop removes a stop; missing is ErrNotFound, referenced by stop
// times is ErrConflict.
func (q *Queries) DeleteStop(ctx context.Context, id string) error {
	var refs int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stop_times WHERE stop_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("transitdb: count stop references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("stop %s is referenced by stop times: %w", id, ErrConflict)
	}

	res, err := q.db.ExecContext(ctx, `DELETE FROM stops WHERE stop_id = ?`, id)
	if err != nil {
		return fmt.Errorf("transitdb: delete stop %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transitdb: delete stop %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("stop %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanStop(row rowScanner) (models.Stop, error) {
	var s models.Stop
	var lat, lon sql.NullFloat64
	err := row.Scan(&s.ID, &s.Name, &lat, &lon)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Stop{}, err
		}
		return models.Stop{}, fmt.Errorf("transitdb: scan stop: %w", err)
	}
	s.Lat = floatPtr(lat)
	s.Lon = floatPtr(lon)
	return s, nil
}
