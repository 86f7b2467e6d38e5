package transitdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bebraradar/bebraradar/internal/models"
)

const vehiclePositionColumns = `vehicle_no, trip_id, ts, last_stop_ts, lat, lon, speed_mps, bearing_deg, gps_accuracy_m`

// AllVehiclePositions returns the current position of every vehicle ordered
// by vehicle number.
func (q *Queries) AllVehiclePositions(ctx context.Context) ([]models.VehiclePosition, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+vehiclePositionColumns+` FROM vehicle_positions_current ORDER BY vehicle_no`)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query vehicle positions: %w", err)
	}
	defer rows.Close()

	var positions []models.VehiclePosition
	for rows.Next() {
		p, err := scanVehiclePosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// VehiclePositionByNo returns one vehicle's current position or ErrNotFound.
func (q *Queries) VehiclePositionByNo(ctx context.Context, vehicleNo string) (*models.VehiclePosition, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+vehiclePositionColumns+` FROM vehicle_positions_current WHERE vehicle_no = ?`, vehicleNo)
	p, err := scanVehiclePosition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s: %w", vehicleNo, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateVehiclePosition inserts a first report for a vehicle; an existing
// vehicle number is ErrConflict.
func (q *Queries) CreateVehiclePosition(ctx context.Context, p models.VehiclePosition) error {
	if _, err := q.VehiclePositionByNo(ctx, p.VehicleNo); err == nil {
		return fmt.Errorf("vehicle %s: %w", p.VehicleNo, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return q.writeVehiclePosition(ctx, p)
}

// ReplaceVehiclePosition upserts the vehicle's current position.
func (q *Queries) ReplaceVehiclePosition(ctx context.Context, p models.VehiclePosition) error {
	return q.writeVehiclePosition(ctx, p)
}

func (q *Queries) writeVehiclePosition(ctx context.Context, p models.VehiclePosition) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO vehicle_positions_current (`+vehiclePositionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		p.VehicleNo, p.TripID, formatTime(p.Timestamp), formatTime(p.LastStopTimestamp),
		nullFloat(p.Lat), nullFloat(p.Lon), nullFloat(p.SpeedMps), nullFloat(p.BearingDeg), nullFloat(p.GPSAccuracyM),
	)
	if err != nil {
		return fmt.Errorf("transitdb: write vehicle position %s: %w", p.VehicleNo, err)
	}
	return nil
}

// DeleteVehiclePosition removes a vehicle's report; missing is ErrNotFound.
func (q *Queries) DeleteVehiclePosition(ctx context.Context, vehicleNo string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM vehicle_positions_current WHERE vehicle_no = ?`, vehicleNo)
	if err != nil {
		return fmt.Errorf("transitdb: delete vehicle position %s: %w", vehicleNo, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transitdb: delete vehicle position %s: %w", vehicleNo, err)
	}
	if affected == 0 {
		return fmt.Errorf("vehicle %s: %w", vehicleNo, ErrNotFound)
	}
	return nil
}

func scanVehiclePosition(row rowScanner) (models.VehiclePosition, error) {
	var p models.VehiclePosition
	var ts, lastStopTS string
	var lat, lon, speed, bearing, accuracy sql.NullFloat64

	err := row.Scan(&p.VehicleNo, &p.TripID, &ts, &lastStopTS, &lat, &lon, &speed, &bearing, &accuracy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VehiclePosition{}, err
		}
		return models.VehiclePosition{}, fmt.Errorf("transitdb: scan vehicle position: %w", err)
	}

	if p.Timestamp, err = parseTime(ts); err != nil {
		return models.VehiclePosition{}, err
	}
	if p.LastStopTimestamp, err = parseTime(lastStopTS); err != nil {
		return models.VehiclePosition{}, err
	}
	p.Lat, p.Lon = floatPtr(lat), floatPtr(lon)
	p.SpeedMps, p.BearingDeg, p.GPSAccuracyM = floatPtr(speed), floatPtr(bearing), floatPtr(accuracy)
	return p, nil
}
