package transitdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bebraradar/bebraradar/internal/models"
)

const calendarColumns = `service_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, start_date, end_date`

// AllCalendars returns every service calendar.
func (q *Queries) AllCalendars(ctx context.Context) ([]models.ServiceCalendar, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+calendarColumns+` FROM calendar`)
	if err != nil {
		return nil, fmt.Errorf("transitdb: query calendars: %w", err)
	}
	defer rows.Close()

	var calendars []models.ServiceCalendar
	for rows.Next() {
		c, err := scanCalendar(rows)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, c)
	}
	return calendars, rows.Err()
}

// CalendarByID returns one calendar or ErrNotFound.
func (q *Queries) CalendarByID(ctx context.Context, id string) (*models.ServiceCalendar, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+calendarColumns+` FROM calendar WHERE service_id = ?`, id)
	c, err := scanCalendar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("service calendar %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCalendar inserts a new calendar; an existing id is ErrConflict.
func (q *Queries) CreateCalendar(ctx context.Context, c models.ServiceCalendar) error {
	if _, err := q.CalendarByID(ctx, c.ID); err == nil {
		return fmt.Errorf("service calendar %s: %w", c.ID, ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	return q.writeCalendar(ctx, c)
}

// ReplaceCalendar upserts the calendar under the given id.
func (q *Queries) ReplaceCalendar(ctx context.Context, c models.ServiceCalendar) error {
	return q.writeCalendar(ctx, c)
}

func (q *Queries) writeCalendar(ctx context.Context, c models.ServiceCalendar) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO calendar (`+calendarColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		c.ID,
		boolToInt(c.Monday), boolToInt(c.Tuesday), boolToInt(c.Wednesday), boolToInt(c.Thursday),
		boolToInt(c.Friday), boolToInt(c.Saturday), boolToInt(c.Sunday),
		c.StartDate.Format(time.DateOnly), c.EndDate.Format(time.DateOnly),
	)
	if err != nil {
		return fmt.Errorf("transitdb: write calendar %s: %w", c.ID, err)
	}
	return nil
}

// DeleteCalendar removes a calendar; a missing id is ErrNotFound and a
// calendar still referenced by trips is ErrConflict.
func (q *Queries) DeleteCalendar(ctx context.Context, id string) error {
	var refs int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips WHERE service_id = ?`, id).Scan(&refs); err != nil {
		return fmt.Errorf("transitdb: count calendar references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("service calendar %s is referenced by trips: %w", id, ErrConflict)
	}

	res, err := q.db.ExecContext(ctx, `DELETE FROM calendar WHERE service_id = ?`, id)
	if err != nil {
		return fmt.Errorf("transitdb: delete calendar %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transitdb: delete calendar %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("service calendar %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalendar(row rowScanner) (models.ServiceCalendar, error) {
	var c models.ServiceCalendar
	var mon, tue, wed, thu, fri, sat, sun int
	var startDate, endDate string

	err := row.Scan(&c.ID, &mon, &tue, &wed, &thu, &fri, &sat, &sun, &startDate, &endDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ServiceCalendar{}, err
		}
		return models.ServiceCalendar{}, fmt.Errorf("transitdb: scan calendar: %w", err)
	}

	c.Monday, c.Tuesday, c.Wednesday = mon != 0, tue != 0, wed != 0
	c.Thursday, c.Friday, c.Saturday, c.Sunday = thu != 0, fri != 0, sat != 0, sun != 0

	if c.StartDate, err = models.ParseDate(startDate); err != nil {
		return models.ServiceCalendar{}, fmt.Errorf("transitdb: calendar %s: %w", c.ID, err)
	}
	if c.EndDate, err = models.ParseDate(endDate); err != nil {
		return models.ServiceCalendar{}, fmt.Errorf("transitdb: calendar %s: %w", c.ID, err)
	}
	return c, nil
}
