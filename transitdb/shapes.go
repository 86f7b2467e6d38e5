package transitdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/bebraradar/bebraradar/internal/models"
)

// ListShapeIDs returns every shape identifier ordered ascending.
func (q *Queries) ListShapeIDs(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT shape_id FROM shapes ORDER BY shape_id`)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query shapes: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("transitdb: scan shape id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ShapeByID returns a shape with its points ordered by sequence, or
// ErrNotFound.
func (q *Queries) ShapeByID(ctx context.Context, id string) (*models.Shape, error) {
	var exists int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shapes WHERE shape_id = ?`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("transitdb: query shape %s: %w", id, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("shape %s: %w", id, ErrNotFound)
	}

	rows, err := q.db.QueryContext(ctx, `
		SELECT point_sequence, lat, lon
		FROM shape_points
		WHERE shape_id = ?
		ORDER BY point_sequence ASC;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query shape points %s: %w", id, err)
	}
	defer rows.Close()

	shape := &models.Shape{ID: id, Points: []models.ShapePoint{}}
	for rows.Next() {
		var p models.ShapePoint
		if err := rows.Scan(&p.Sequence, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("transitdb: scan shape point: %w", err)
		}
		shape.Points = append(shape.Points, p)
	}
	return shape, rows.Err()
}

// CreateShape inserts a shape and its points; an existing id is ErrConflict.
func (q *Queries) CreateShape(ctx context.Context, shape models.Shape) error {
	if _, err := q.ShapeByID(ctx, shape.ID); err == nil {
		return fmt.Errorf("shape %s: %w", shape.ID, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transitdb: begin shape transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO shapes (shape_id) VALUES (?)`, shape.ID); err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("transitdb: insert shape %s: %w", shape.ID, err)
	}

	for _, p := range shape.Points {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO shape_points (shape_id, point_sequence, lat, lon) VALUES (?, ?, ?, ?)`,
			shape.ID, p.Sequence, p.Lat, p.Lon,
		)
		if err != nil {
			tx.Rollback() // nolint:errcheck
			return fmt.Errorf("transitdb: insert shape point (%s, %d): %w", shape.ID, p.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transitdb: commit shape %s: %w", shape.ID, err)
	}
	return nil
}

// DeleteShape removes a shape and its points; missing is ErrNotFound and a
// shape still referenced by trips is ErrConflict.
func (q *Queries) DeleteShape(ctx context.Context, id string) error {
	var refs int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE shape_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("transitdb: count shape references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("shape %s is referenced by trips: %w", id, ErrConflict)
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transitdb: begin shape delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shape_points WHERE shape_id = ?`, id); err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("transitdb: delete shape points %s: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM shapes WHERE shape_id = ?`, id)
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("transitdb: delete shape %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("transitdb: delete shape %s: %w", id, err)
	}
	if affected == 0 {
		tx.Rollback() // nolint:errcheck
		return fmt.Errorf("shape %s: %w", id, ErrNotFound)
	}
	return tx.Commit()
}
