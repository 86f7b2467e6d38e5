package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bebraradar/bebraradar/internal/app"
	"github.com/bebraradar/bebraradar/internal/appconf"
	"github.com/bebraradar/bebraradar/internal/logging"
	"github.com/bebraradar/bebraradar/internal/metrics"
	"github.com/bebraradar/bebraradar/internal/models"
	"github.com/bebraradar/bebraradar/internal/timetable"
	"github.com/bebraradar/bebraradar/transitdb"
)

func newTestAPI(t *testing.T) (*RestAPI, http.Handler) {
	t.Helper()

	store, err := transitdb.NewClient(transitdb.Config{DBPath: ":memory:", Env: appconf.Test})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	application := &app.Application{
		Config:    appconf.Config{Env: appconf.Test},
		Logger:    logging.NewStructuredLogger(io.Discard, slog.LevelError),
		Store:     store,
		Timetable: timetable.NewService(store.Queries),
		Metrics:   metrics.NewCollector(),
	}
	api := NewRestAPI(application)
	return api, api.Routes()
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// seedWeekdaySchedule loads a minimal schedule: one weekday calendar, one
// route, two stops and a trip with two stop times. Returns the trip id.
func seedWeekdaySchedule(t *testing.T, api *RestAPI) int64 {
	t.Helper()
	ctx := context.Background()
	q := api.Store.Queries

	require.NoError(t, q.CreateRoute(ctx, models.Route{ID: "routeA", Description: "Downtown loop"}))
	require.NoError(t, q.CreateStop(ctx, models.Stop{ID: "stop1", Name: "Central"}))
	require.NoError(t, q.CreateStop(ctx, models.Stop{ID: "stop2", Name: "Harbor"}))
	require.NoError(t, q.CreateCalendar(ctx, models.ServiceCalendar{
		ID:        "WD1",
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
		StartDate: models.NewDate(2024, time.January, 1),
		EndDate:   models.NewDate(2024, time.December, 31),
	}))

	tripID, err := q.CreateTrip(ctx, models.Trip{
		RouteID:   "routeA",
		ServiceID: "WD1",
		StartTime: time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	require.NoError(t, q.ReplaceStopTimesForTrip(ctx, tripID, []models.StopTime{
		{StopSequence: 1, StopID: "stop1", ArrivalTime: 28800, DepartureTime: 28860},
		{StopSequence: 2, StopID: "stop2", ArrivalTime: 29400, DepartureTime: 29460},
	}))
	return tripID
}
