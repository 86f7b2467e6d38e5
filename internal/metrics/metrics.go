// Package metrics exposes the application's Prometheus collectors on a
// private registry, keeping the default registry's Go runtime noise out of
// the scrape output.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	TimetableQueries *prometheus.CounterVec // op label: routes_by_date|routes_by_weekday|route_schedule
	TimetableErrors  *prometheus.CounterVec // op label, same values

	QueryDuration prometheus.Histogram

	EventsAppended *prometheus.CounterVec // kind label: geolocation|timetable|anomaly

	RealtimeVehicles    prometheus.Gauge
	RealtimePolls       prometheus.Counter
	RealtimePollErrs    prometheus.Counter
	RealtimeSkippedRows prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		TimetableQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bebraradar_timetable_queries_total",
			Help: "Total timetable queries served, by operation.",
		}, []string{"op"}),
		TimetableErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bebraradar_timetable_query_errors_total",
			Help: "Total timetable queries that failed, by operation.",
		}, []string{"op"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bebraradar_timetable_query_duration_seconds",
			Help:    "Duration of timetable query resolution.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		EventsAppended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bebraradar_trip_events_appended_total",
			Help: "Total trip events appended, by kind.",
		}, []string{"kind"}),
		RealtimeVehicles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bebraradar_realtime_vehicles",
			Help: "Vehicles updated by the most recent realtime poll.",
		}),
		RealtimePolls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bebraradar_realtime_polls_total",
			Help: "Total realtime feed polls.",
		}),
		RealtimePollErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bebraradar_realtime_poll_errors_total",
			Help: "Total realtime feed polls that failed.",
		}),
		RealtimeSkippedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bebraradar_realtime_skipped_vehicles_total",
			Help: "Realtime vehicle entries skipped for missing ids or unknown trips.",
		}),
	}

	reg.MustRegister(
		c.TimetableQueries, c.TimetableErrors, c.QueryDuration,
		c.EventsAppended,
		c.RealtimeVehicles, c.RealtimePolls, c.RealtimePollErrs, c.RealtimeSkippedRows,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
