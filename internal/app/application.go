package app

import (
	"log/slog"

	"github.com/bebraradar/bebraradar/internal/appconf"
	"github.com/bebraradar/bebraradar/internal/metrics"
	"github.com/bebraradar/bebraradar/internal/timetable"
	"github.com/bebraradar/bebraradar/transitdb"
)

// Application holds the dependencies for the HTTP handlers, helpers and
// middleware: configuration, the logger, the storage client, the timetable
// engine and the metrics collector.
type Application struct {
	Config    appconf.Config
	Logger    *slog.Logger
	Store     *transitdb.Client
	Timetable *timetable.Service
	Metrics   *metrics.Collector
}
