// Package timetable resolves which services, trips and routes operate on a
// given date or weekday and assembles ordered per-trip stop schedules from
// the flat relational data in storage.
package timetable

import (
	"context"
	"sort"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/bebraradar/bebraradar/internal/models"
)

// assembleWorkers bounds the per-trip stop-time fan-out in
// RouteScheduleForDate. Fetches are independent reads; output order is fixed
// by the trip sort, not by completion order.
const assembleWorkers = 8

// Service answers timetable queries. It holds no state between calls; every
// query is a pure function of its inputs and current storage contents.
type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

// ActiveServiceIDsOn returns the identifiers of every calendar active on the
// given date: the date falls inside the calendar's validity window and the
// flag for the date's weekday is set. An empty result is valid.
func (s *Service) ActiveServiceIDsOn(ctx context.Context, date models.Date) ([]string, error) {
	calendars, err := s.store.AllCalendars(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, c := range calendars {
		if c.ActiveOn(date) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// ActiveServiceIDsByWeekday returns the identifiers of every calendar whose
// flag for the given weekday is set. Unlike ActiveServiceIDsOn this ignores
// validity windows entirely: it answers "which services ever run on this
// weekday", not "which are active today".
func (s *Service) ActiveServiceIDsByWeekday(ctx context.Context, day time.Weekday) ([]string, error) {
	calendars, err := s.store.AllCalendars(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, c := range calendars {
		if c.RunsOn(day) {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// RoutesForDate returns the distinct routes with at least one trip running
// on the given date, sorted ascending by route identifier.
func (s *Service) RoutesForDate(ctx context.Context, date models.Date) ([]models.RouteSummary, error) {
	serviceIDs, err := s.ActiveServiceIDsOn(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(serviceIDs) == 0 {
		return []models.RouteSummary{}, nil
	}

	trips, err := s.store.TripsForServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	return distinctRoutesSorted(trips), nil
}

// RoutesForWeekday parses the weekday token and returns the distinct routes
// with at least one trip on a service that runs on that weekday, regardless
// of the services' validity windows.
func (s *Service) RoutesForWeekday(ctx context.Context, weekday string) ([]models.RouteSummary, error) {
	day, err := ParseWeekday(weekday)
	if err != nil {
		return nil, err
	}

	serviceIDs, err := s.ActiveServiceIDsByWeekday(ctx, day)
	if err != nil {
		return nil, err
	}
	if len(serviceIDs) == 0 {
		return []models.RouteSummary{}, nil
	}

	trips, err := s.store.TripsForServices(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	return distinctRoutesSorted(trips), nil
}

// RouteScheduleForDate returns the assembled schedule of every trip the
// route runs on the given date, ordered by start time ascending. Trips with
// identical start times order by trip identifier ascending; that secondary
// key is part of the contract so identical queries always produce identical
// output.
func (s *Service) RouteScheduleForDate(ctx context.Context, routeID string, date models.Date) ([]models.TripSchedule, error) {
	serviceIDs, err := s.ActiveServiceIDsOn(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(serviceIDs) == 0 {
		return []models.TripSchedule{}, nil
	}

	trips, err := s.store.TripsForRouteAndServices(ctx, routeID, serviceIDs)
	if err != nil {
		return nil, err
	}

	sort.Slice(trips, func(i, j int) bool {
		if trips[i].StartTime.Equal(trips[j].StartTime) {
			return trips[i].ID < trips[j].ID
		}
		return trips[i].StartTime.Before(trips[j].StartTime)
	})

	schedules := make([]models.TripSchedule, len(trips))
	p := pool.New().WithErrors().WithMaxGoroutines(assembleWorkers)
	for i, trip := range trips {
		i, trip := i, trip
		p.Go(func() error {
			schedule, err := s.AssembleSchedule(ctx, trip)
			if err != nil {
				return err
			}
			schedules[i] = schedule
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return schedules, nil
}

// AssembleSchedule builds the nested schedule record for one trip. Stop
// order follows stop_sequence exactly, including gaps, and arrival/departure
// seconds pass through unchanged. A trip without stop times yields an empty
// stop list.
func (s *Service) AssembleSchedule(ctx context.Context, trip models.Trip) (models.TripSchedule, error) {
	rows, err := s.store.StopTimesForTrip(ctx, trip.ID)
	if err != nil {
		return models.TripSchedule{}, err
	}

	names := make(map[string]string)
	stops := make([]models.TripStop, 0, len(rows))
	for _, row := range rows {
		name, ok := names[row.StopID]
		if !ok {
			stop, err := s.store.StopByID(ctx, row.StopID)
			if err != nil {
				return models.TripSchedule{}, err
			}
			name = stop.Name
			names[row.StopID] = name
		}
		stops = append(stops, models.TripStop{
			StopSequence:  row.StopSequence,
			StopID:        row.StopID,
			StopName:      name,
			ArrivalTime:   row.ArrivalTime,
			DepartureTime: row.DepartureTime,
		})
	}

	return models.TripSchedule{
		TripID:    trip.ID,
		RouteID:   trip.RouteID,
		StartTime: trip.StartTime,
		Stops:     stops,
	}, nil
}

// distinctRoutesSorted projects trips to their route identifiers,
// deduplicates and sorts ascending by byte order, so identical trip sets
// always yield identical output regardless of iteration order.
func distinctRoutesSorted(trips []models.Trip) []models.RouteSummary {
	seen := make(map[string]struct{}, len(trips))
	ids := make([]string, 0, len(trips))
	for _, trip := range trips {
		if _, ok := seen[trip.RouteID]; ok {
			continue
		}
		seen[trip.RouteID] = struct{}{}
		ids = append(ids, trip.RouteID)
	}
	sort.Strings(ids)

	routes := make([]models.RouteSummary, 0, len(ids))
	for _, id := range ids {
		routes = append(routes, models.RouteSummary{ID: id})
	}
	return routes
}
