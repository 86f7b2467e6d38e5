package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bebraradar/bebraradar/internal/models"
)

func TestTimetableRoutes_RequiresExactlyOneParameter(t *testing.T) {
	_, handler := newTestAPI(t)

	rec := doRequest(t, handler, http.MethodGet, "/timetable/routes", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Provide either date or weekday", body["error"])

	rec = doRequest(t, handler, http.MethodGet, "/timetable/routes?date=2024-03-04&weekday=MON", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableRoutes_ByDate(t *testing.T) {
	api, handler := newTestAPI(t)
	seedWeekdaySchedule(t, api)

	// 2024-03-04 is a Monday inside the calendar window.
	rec := doRequest(t, handler, http.MethodGet, "/timetable/routes?date=2024-03-04", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	routes := decodeBody[[]models.RouteSummary](t, rec)
	assert.Equal(t, []models.RouteSummary{{ID: "routeA"}}, routes)

	// Saturday: no active service, empty array rather than null.
	rec = doRequest(t, handler, http.MethodGet, "/timetable/routes?date=2024-03-09", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTimetableRoutes_ByWeekday(t *testing.T) {
	api, handler := newTestAPI(t)
	seedWeekdaySchedule(t, api)

	for _, token := range []string{"MON", "monday", "ПН", "понедельник"} {
		rec := doRequest(t, handler, http.MethodGet, "/timetable/routes?weekday="+token, nil)
		require.Equal(t, http.StatusOK, rec.Code, "token %s", token)
		routes := decodeBody[[]models.RouteSummary](t, rec)
		assert.Equal(t, []models.RouteSummary{{ID: "routeA"}}, routes, "token %s", token)
	}

	rec := doRequest(t, handler, http.MethodGet, "/timetable/routes?weekday=Funday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Funday")
}

func TestTimetableRoutes_InvalidDate(t *testing.T) {
	_, handler := newTestAPI(t)

	rec := doRequest(t, handler, http.MethodGet, "/timetable/routes?date=04.03.2024", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTimetableTrips_RequiresDate(t *testing.T) {
	_, handler := newTestAPI(t)

	rec := doRequest(t, handler, http.MethodGet, "/timetable/routes/routeA/trips", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "date is required", body["error"])
}

func TestTimetableTrips_AssembledSchedule(t *testing.T) {
	api, handler := newTestAPI(t)
	tripID := seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodGet, "/timetable/routes/routeA/trips?date=2024-03-04", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	schedules := decodeBody[[]models.TripSchedule](t, rec)
	require.Len(t, schedules, 1)
	assert.Equal(t, tripID, schedules[0].TripID)
	assert.Equal(t, "routeA", schedules[0].RouteID)
	require.Len(t, schedules[0].Stops, 2)
	assert.Equal(t, "Central", schedules[0].Stops[0].StopName)
	assert.Equal(t, "Harbor", schedules[0].Stops[1].StopName)
	assert.Equal(t, 28800, schedules[0].Stops[0].ArrivalTime)
}

func TestTimetableTrips_UnknownRouteIsEmpty(t *testing.T) {
	api, handler := newTestAPI(t)
	seedWeekdaySchedule(t, api)

	rec := doRequest(t, handler, http.MethodGet, "/timetable/routes/no-such-route/trips?date=2024-03-04", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
