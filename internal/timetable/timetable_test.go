package timetable

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bebraradar/bebraradar/internal/models"
)

// fakeStore is an in-memory Storage for exercising the engine without a
// database.
type fakeStore struct {
	calendars []models.ServiceCalendar
	trips     []models.Trip
	stopTimes map[int64][]models.StopTime
	stops     map[string]models.Stop

	tripQueryCalls int
}

func (f *fakeStore) AllCalendars(ctx context.Context) ([]models.ServiceCalendar, error) {
	return f.calendars, nil
}

func (f *fakeStore) TripsForServices(ctx context.Context, serviceIDs []string) ([]models.Trip, error) {
	f.tripQueryCalls++
	var out []models.Trip
	for _, trip := range f.trips {
		if slices.Contains(serviceIDs, trip.ServiceID) {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (f *fakeStore) TripsForRouteAndServices(ctx context.Context, routeID string, serviceIDs []string) ([]models.Trip, error) {
	f.tripQueryCalls++
	var out []models.Trip
	for _, trip := range f.trips {
		if trip.RouteID == routeID && slices.Contains(serviceIDs, trip.ServiceID) {
			out = append(out, trip)
		}
	}
	return out, nil
}

func (f *fakeStore) StopTimesForTrip(ctx context.Context, tripID int64) ([]models.StopTime, error) {
	return f.stopTimes[tripID], nil
}

func (f *fakeStore) StopByID(ctx context.Context, stopID string) (*models.Stop, error) {
	stop, ok := f.stops[stopID]
	if !ok {
		return nil, fmt.Errorf("stop not found: %s", stopID)
	}
	return &stop, nil
}

func weekdayCalendar(id string, days ...time.Weekday) models.ServiceCalendar {
	c := models.ServiceCalendar{
		ID:        id,
		StartDate: models.NewDate(2024, time.January, 1),
		EndDate:   models.NewDate(2024, time.December, 31),
	}
	for _, d := range days {
		switch d {
		case time.Monday:
			c.Monday = true
		case time.Tuesday:
			c.Tuesday = true
		case time.Wednesday:
			c.Wednesday = true
		case time.Thursday:
			c.Thursday = true
		case time.Friday:
			c.Friday = true
		case time.Saturday:
			c.Saturday = true
		case time.Sunday:
			c.Sunday = true
		}
	}
	return c
}

func newTestService() (*Service, *fakeStore) {
	store := &fakeStore{
		calendars: []models.ServiceCalendar{
			weekdayCalendar("WD1", time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
			weekdayCalendar("WKND", time.Saturday, time.Sunday),
		},
		trips: []models.Trip{
			{ID: 1, RouteID: "routeA", ServiceID: "WD1", StartTime: mustTime("2024-03-04T08:00:00+03:00")},
			{ID: 2, RouteID: "routeB", ServiceID: "WD1", StartTime: mustTime("2024-03-04T09:00:00+03:00")},
			{ID: 3, RouteID: "routeA", ServiceID: "WKND", StartTime: mustTime("2024-03-09T10:00:00+03:00")},
		},
		stopTimes: map[int64][]models.StopTime{},
		stops:     map[string]models.Stop{},
	}
	return NewService(store), store
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestActiveServiceIDsOnMatchesRangeAndWeekday(t *testing.T) {
	svc, _ := newTestService()

	// 2024-03-04 is a Monday.
	ids, err := svc.ActiveServiceIDsOn(context.Background(), models.NewDate(2024, time.March, 4))
	require.NoError(t, err)
	assert.Equal(t, []string{"WD1"}, ids)

	// 2024-03-09 is a Saturday.
	ids, err = svc.ActiveServiceIDsOn(context.Background(), models.NewDate(2024, time.March, 9))
	require.NoError(t, err)
	assert.Equal(t, []string{"WKND"}, ids)
}

func TestActiveServiceIDsOnOutsideValidityWindow(t *testing.T) {
	svc, _ := newTestService()

	// A Monday, but before every calendar's start date.
	ids, err := svc.ActiveServiceIDsOn(context.Background(), models.NewDate(2023, time.December, 25))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestActiveServiceIDsOnRangeBoundariesAreInclusive(t *testing.T) {
	svc, _ := newTestService()

	// 2024-01-01 is a Monday and the first day of WD1's range.
	ids, err := svc.ActiveServiceIDsOn(context.Background(), models.NewDate(2024, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"WD1"}, ids)

	// 2024-12-31 is a Tuesday and the last day.
	ids, err = svc.ActiveServiceIDsOn(context.Background(), models.NewDate(2024, time.December, 31))
	require.NoError(t, err)
	assert.Equal(t, []string{"WD1"}, ids)
}

func TestRoutesForDateSortedAndDeduplicated(t *testing.T) {
	svc, _ := newTestService()

	routes, err := svc.RoutesForDate(context.Background(), models.NewDate(2024, time.March, 4))
	require.NoError(t, err)
	assert.Equal(t, []models.RouteSummary{{ID: "routeA"}, {ID: "routeB"}}, routes)

	routes, err = svc.RoutesForDate(context.Background(), models.NewDate(2024, time.March, 9))
	require.NoError(t, err)
	assert.Equal(t, []models.RouteSummary{{ID: "routeA"}}, routes)
}

func TestRoutesForDateNoActiveServiceSkipsTripQuery(t *testing.T) {
	svc, store := newTestService()

	routes, err := svc.RoutesForDate(context.Background(), models.NewDate(2023, time.June, 5))
	require.NoError(t, err)
	assert.Empty(t, routes)
	assert.NotNil(t, routes)
	assert.Zero(t, store.tripQueryCalls, "empty service set must not hit the trip store")
}

func TestRoutesForWeekdayIgnoresValidityWindow(t *testing.T) {
	svc, store := newTestService()

	// Expired calendar whose Thursday flag is still set. The weekday query
	// answers "ever runs on Thursdays", so it must match anyway.
	expired := weekdayCalendar("OLD", time.Thursday)
	expired.StartDate = models.NewDate(2019, time.January, 1)
	expired.EndDate = models.NewDate(2019, time.December, 31)
	store.calendars = append(store.calendars, expired)
	store.trips = append(store.trips, models.Trip{
		ID: 9, RouteID: "routeC", ServiceID: "OLD", StartTime: mustTime("2019-05-02T07:30:00+03:00"),
	})

	routes, err := svc.RoutesForWeekday(context.Background(), "ЧТ")
	require.NoError(t, err)
	assert.Equal(t, []models.RouteSummary{{ID: "routeA"}, {ID: "routeB"}, {ID: "routeC"}}, routes)
}

func TestRoutesForWeekdayVariantsReturnIdenticalResults(t *testing.T) {
	svc, _ := newTestService()

	base, err := svc.RoutesForWeekday(context.Background(), "Thursday")
	require.NoError(t, err)

	for _, token := range []string{"thu", "ЧТ", "четверг"} {
		routes, err := svc.RoutesForWeekday(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, base, routes, "token %q", token)
	}
}

func TestRoutesForWeekdayInvalidToken(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RoutesForWeekday(context.Background(), "Funday")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
	assert.Contains(t, err.Error(), "Funday")
}

func TestAssembleSchedulePreservesSequenceOrderAndRawSeconds(t *testing.T) {
	svc, store := newTestService()
	store.stops["S1"] = models.Stop{ID: "S1", Name: "Central"}
	store.stops["S2"] = models.Stop{ID: "S2", Name: "North Bridge"}
	// Non-contiguous sequence numbers and a post-midnight departure.
	store.stopTimes[1] = []models.StopTime{
		{TripID: 1, StopSequence: 1, StopID: "S1", ArrivalTime: 1000, DepartureTime: 1020},
		{TripID: 1, StopSequence: 3, StopID: "S2", ArrivalTime: 1200, DepartureTime: 1200},
		{TripID: 1, StopSequence: 7, StopID: "S1", ArrivalTime: 86500, DepartureTime: 86560},
	}

	schedule, err := svc.AssembleSchedule(context.Background(), store.trips[0])
	require.NoError(t, err)

	assert.Equal(t, int64(1), schedule.TripID)
	assert.Equal(t, "routeA", schedule.RouteID)
	require.Len(t, schedule.Stops, 3)
	assert.Equal(t, []models.TripStop{
		{StopSequence: 1, StopID: "S1", StopName: "Central", ArrivalTime: 1000, DepartureTime: 1020},
		{StopSequence: 3, StopID: "S2", StopName: "North Bridge", ArrivalTime: 1200, DepartureTime: 1200},
		{StopSequence: 7, StopID: "S1", StopName: "Central", ArrivalTime: 86500, DepartureTime: 86560},
	}, schedule.Stops)
}

func TestAssembleScheduleEmptyTrip(t *testing.T) {
	svc, store := newTestService()

	schedule, err := svc.AssembleSchedule(context.Background(), store.trips[1])
	require.NoError(t, err)
	assert.NotNil(t, schedule.Stops)
	assert.Empty(t, schedule.Stops)
}

func TestRouteScheduleForDateOrdersByStartTimeThenTripID(t *testing.T) {
	svc, store := newTestService()
	store.stops["S1"] = models.Stop{ID: "S1", Name: "Central"}

	shared := mustTime("2024-03-04T08:00:00+03:00")
	store.trips = []models.Trip{
		{ID: 5, RouteID: "routeA", ServiceID: "WD1", StartTime: mustTime("2024-03-04T12:00:00+03:00")},
		{ID: 4, RouteID: "routeA", ServiceID: "WD1", StartTime: shared},
		{ID: 2, RouteID: "routeA", ServiceID: "WD1", StartTime: shared},
		{ID: 3, RouteID: "routeB", ServiceID: "WD1", StartTime: shared},
	}

	schedules, err := svc.RouteScheduleForDate(context.Background(), "routeA", models.NewDate(2024, time.March, 4))
	require.NoError(t, err)

	require.Len(t, schedules, 3)
	assert.Equal(t, int64(2), schedules[0].TripID)
	assert.Equal(t, int64(4), schedules[1].TripID)
	assert.Equal(t, int64(5), schedules[2].TripID)
	for i := 1; i < len(schedules); i++ {
		assert.False(t, schedules[i].StartTime.Before(schedules[i-1].StartTime))
	}
}

func TestRouteScheduleForDateNoActiveService(t *testing.T) {
	svc, store := newTestService()

	schedules, err := svc.RouteScheduleForDate(context.Background(), "routeA", models.NewDate(2023, time.June, 5))
	require.NoError(t, err)
	assert.NotNil(t, schedules)
	assert.Empty(t, schedules)
	assert.Zero(t, store.tripQueryCalls)
}

func TestRouteScheduleForDateUnknownRouteYieldsEmptyList(t *testing.T) {
	svc, _ := newTestService()

	schedules, err := svc.RouteScheduleForDate(context.Background(), "no-such-route", models.NewDate(2024, time.March, 4))
	require.NoError(t, err)
	assert.Empty(t, schedules)
}

func TestQueriesAreIdempotent(t *testing.T) {
	svc, store := newTestService()
	store.stops["S1"] = models.Stop{ID: "S1", Name: "Central"}
	store.stopTimes[1] = []models.StopTime{
		{TripID: 1, StopSequence: 1, StopID: "S1", ArrivalTime: 1000, DepartureTime: 1020},
	}

	date := models.NewDate(2024, time.March, 4)

	first, err := svc.RouteScheduleForDate(context.Background(), "routeA", date)
	require.NoError(t, err)
	second, err := svc.RouteScheduleForDate(context.Background(), "routeA", date)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	routesFirst, err := svc.RoutesForDate(context.Background(), date)
	require.NoError(t, err)
	routesSecond, err := svc.RoutesForDate(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, routesFirst, routesSecond)
}
