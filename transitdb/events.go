package transitdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bebraradar/bebraradar/internal/models"
)

// AppendEvent stores a reported trip event and returns its assigned
// identifier.
func (q *Queries) AppendEvent(ctx context.Context, e models.TripEvent) (int64, error) {
	var reported sql.NullString
	if e.ReportedTime != nil {
		reported = sql.NullString{String: formatTime(*e.ReportedTime), Valid: true}
	}
	var delay sql.NullInt64
	if e.EstimatedDelay != nil {
		delay = sql.NullInt64{Int64: int64(*e.EstimatedDelay), Valid: true}
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO trip_events (event_kind, trip_id, user_id, ts, lat, lon, gps_accuracy_m, event_type, reported_time, estimated_delay)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		string(e.Kind), e.TripID, nullInt(e.UserID), formatTime(e.Timestamp),
		nullFloat(e.Lat), nullFloat(e.Lon), nullFloat(e.GPSAccuracyM),
		e.Type, reported, delay,
	)
	if err != nil {
		return 0, fmt.Errorf("transitdb: insert %s event: %w", e.Kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transitdb: insert %s event: %w", e.Kind, err)
	}
	return id, nil
}

// EventsByKind returns one event stream newest first. A non-nil since
// filters to events at or after that instant.
func (q *Queries) EventsByKind(ctx context.Context, kind models.EventKind, since *time.Time) ([]models.TripEvent, error) {
	query := `
		SELECT event_id, trip_id, user_id, ts, lat, lon, gps_accuracy_m, event_type, reported_time, estimated_delay
		FROM trip_events
		WHERE event_kind = ?`
	args := []any{string(kind)}
	if since != nil {
		query += ` AND datetime(ts) >= datetime(?)`
		args = append(args, formatTime(*since))
	}
	query += ` ORDER BY datetime(ts) DESC, event_id DESC;`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query %s events: %w", kind, err)
	}
	defer rows.Close()

	var events []models.TripEvent
	for rows.Next() {
		var e models.TripEvent
		var ts string
		var userID sql.NullInt64
		var lat, lon, accuracy sql.NullFloat64
		var eventType sql.NullString
		var reported sql.NullString
		var delay sql.NullInt64

		err := rows.Scan(&e.ID, &e.TripID, &userID, &ts, &lat, &lon, &accuracy, &eventType, &reported, &delay)
		if err != nil {
			return nil, fmt.Errorf("transitdb: scan %s event: %w", kind, err)
		}

		e.Kind = kind
		e.UserID = intPtr(userID)
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		e.Lat, e.Lon, e.GPSAccuracyM = floatPtr(lat), floatPtr(lon), floatPtr(accuracy)
		e.Type = eventType.String
		if reported.Valid {
			t, err := parseTime(reported.String)
			if err != nil {
				return nil, err
			}
			e.ReportedTime = &t
		}
		if delay.Valid {
			d := int(delay.Int64)
			e.EstimatedDelay = &d
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
