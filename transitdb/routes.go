package transitdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bebraradar/bebraradar/internal/models"
)

// ListRoutes returns all routes ordered by identifier.
func (q *Queries) ListRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT route_id, COALESCE(description, '') FROM routes ORDER BY route_id`)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var r models.Route
		if err := rows.Scan(&r.ID, &r.Description); err != nil {
			return nil, fmt.Errorf("transitdb: scan route: %w", err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// RouteByID returns one route or ErrNotFound.
func (q *Queries) RouteByID(ctx context.Context, id string) (*models.Route, error) {
	var r models.Route
	err := q.db.QueryRowContext(ctx,
		`SELECT route_id, COALESCE(description, '') FROM routes WHERE route_id = ?`, id,
	).Scan(&r.ID, &r.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("route %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("transitdb: query route %s: %w", id, err)
	}
	return &r, nil
}

// CreateRoute inserts a new route; an existing id is ErrConflict.
func (q *Queries) CreateRoute(ctx context.Context, r models.Route) error {
	if _, err := q.RouteByID(ctx, r.ID); err == nil {
		return fmt.Errorf("route %s: %w", r.ID, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return q.writeRoute(ctx, r)
}

// ReplaceRoute upserts the route under the given id.
func (q *Queries) ReplaceRoute(ctx context.Context, r models.Route) error {
	return q.writeRoute(ctx, r)
}

func (q *Queries) writeRoute(ctx context.Context, r models.Route) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO routes (route_id, description) VALUES (?, ?)`,
		r.ID, r.Description,
	)
	if err != nil {
		return fmt.Errorf("transitdb: write route %s: %w", r.ID, err)
	}
	return nil
}

// DeleteRoute removes a route; missing is ErrNotFound, referenced by trips
// is ErrConflict.
func (q *Queries) DeleteRoute(ctx context.Context, id string) error {
	var refs int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE route_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("transitdb: count route references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("route %s is referenced by trips: %w", id, ErrConflict)
	}

	res, err := q.db.ExecContext(ctx, `DELETE FROM routes WHERE route_id = ?`, id)
	if err != nil {
		return fmt.Errorf("transitdb: delete route %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transitdb: delete route %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("route %s: %w", id, ErrNotFound)
	}
	return nil
}
