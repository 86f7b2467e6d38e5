package timetable

import (
	"context"

	"github.com/bebraradar/bebraradar/internal/models"
)

// Storage is the read-only view of the schedule data the timetable engine
// needs. The production implementation is transitdb.Queries; tests use an
// in-memory fake.
type Storage interface {
	// AllCalendars returns every service calendar.
	AllCalendars(ctx context.Context) ([]models.ServiceCalendar, error)

	// TripsForServices returns trips whose service is in serviceIDs, in no
	// particular order. An empty set yields an empty result without touching
	// the store.
	TripsForServices(ctx context.Context, serviceIDs []string) ([]models.Trip, error)

	// TripsForRouteAndServices narrows TripsForServices to a single route.
	TripsForRouteAndServices(ctx context.Context, routeID string, serviceIDs []string) ([]models.Trip, error)

	// StopTimesForTrip returns the trip's stop times ordered by stop
	// sequence ascending.
	StopTimesForTrip(ctx context.Context, tripID int64) ([]models.StopTime, error)

	// StopByID resolves a stop reference. Unknown stops are an error; the
	// schema guarantees stop times only reference existing stops.
	StopByID(ctx context.Context, stopID string) (*models.Stop, error)
}
