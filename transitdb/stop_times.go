package transitdb

import (
	"context"
	"fmt"

	"github.com/bebraradar/bebraradar/internal/models"
)

// StopTimesForTrip returns the trip's stop times ordered by stop sequence
// ascending. Sequence is the only field defining stop order along the trip,
// so this ordering is load-bearing for schedule assembly.
func (q *Queries) StopTimesForTrip(ctx context.Context, tripID int64) ([]models.StopTime, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT trip_id, stop_sequence, stop_id, arrival_time, departure_time
		FROM stop_times
		WHERE trip_id = ?
		ORDER BY stop_sequence ASC;
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query stop times for trip %d: %w", tripID, err)
	}
	defer rows.Close()

	var stopTimes []models.StopTime
	for rows.Next() {
		var st models.StopTime
		if err := rows.Scan(&st.TripID, &st.StopSequence, &st.StopID, &st.ArrivalTime, &st.DepartureTime); err != nil {
			return nil, fmt.Errorf("transitdb: scan stop time: %w", err)
		}
		stopTimes = append(stopTimes, st)
	}
	return stopTimes, rows.Err()
}

// ReplaceStopTimesForTrip atomically replaces all stop times of one trip.
func (q *Queries) ReplaceStopTimesForTrip(ctx context.Context, tripID int64, stopTimes []models.StopTime) error {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transitdb: begin stop times transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM stop_times WHERE trip_id = ?`, tripID); err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("transitdb: clear stop times for trip %d: %w", tripID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO stop_times (trip_id, stop_sequence, stop_id, arrival_time, departure_time)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("transitdb: prepare stop time insert: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for _, st := range stopTimes {
		if _, err := stmt.ExecContext(ctx, tripID, st.StopSequence, st.StopID, st.ArrivalTime, st.DepartureTime); err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("transitdb: insert stop time (trip %d, seq %d): %w", tripID, st.StopSequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transitdb: commit stop times for trip %d: %w", tripID, err)
	}
	return nil
}
