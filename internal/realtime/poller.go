// Package realtime polls a GTFS-RT vehicle positions feed and keeps the
// current-position table in storage up to date.
package realtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jamespfennell/gtfs"

	"github.com/bebraradar/bebraradar/internal/logging"
	"github.com/bebraradar/bebraradar/internal/metrics"
	"github.com/bebraradar/bebraradar/internal/models"
	"github.com/bebraradar/bebraradar/transitdb"
)

// Poller periodically fetches a GTFS-RT feed and upserts each reported
// vehicle into the current-positions table. Vehicles without an id or with a
// trip reference that does not resolve to a stored trip are skipped.
type Poller struct {
	url      string
	interval time.Duration
	queries  *transitdb.Queries
	logger   *slog.Logger
	metrics  *metrics.Collector
}

func NewPoller(url string, interval time.Duration, queries *transitdb.Queries, logger *slog.Logger, collector *metrics.Collector) *Poller {
	return &Poller{
		url:      url,
		interval: interval,
		queries:  queries,
		logger:   logger.With(slog.String("component", "realtime_poller")),
		metrics:  collector,
	}
}

// Run polls until the context is cancelled. The first poll happens
// immediately.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	p.metrics.RealtimePolls.Inc()

	feed, err := p.fetchFeed(ctx)
	if err != nil {
		p.metrics.RealtimePollErrs.Inc()
		logging.LogError(p.logger, "failed to fetch realtime feed", err, slog.String("url", p.url))
		return
	}
	if ctx.Err() != nil {
		return
	}

	updated := p.storeVehicles(ctx, feed.Vehicles)
	p.metrics.RealtimeVehicles.Set(float64(updated))
	p.logger.Debug("realtime poll complete", "vehicles", updated, "reported", len(feed.Vehicles))
}

func (p *Poller) fetchFeed(ctx context.Context) (*gtfs.Realtime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(resp.Body, p.logger, "http_response_body")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return gtfs.ParseRealtime(b, &gtfs.ParseRealtimeOptions{})
}

func (p *Poller) storeVehicles(ctx context.Context, vehicles []gtfs.Vehicle) int {
	updated := 0
	for _, vehicle := range vehicles {
		position, ok := p.convertVehicle(ctx, vehicle)
		if !ok {
			p.metrics.RealtimeSkippedRows.Inc()
			continue
		}
		if err := p.queries.ReplaceVehiclePosition(ctx, position); err != nil {
			logging.LogError(p.logger, "failed to store vehicle position", err,
				slog.String("vehicle_no", position.VehicleNo))
			continue
		}
		updated++
	}
	return updated
}

// convertVehicle maps one feed entry onto the stored model. Feed trip ids
// must parse as integers and resolve to a stored trip.
func (p *Poller) convertVehicle(ctx context.Context, vehicle gtfs.Vehicle) (models.VehiclePosition, bool) {
	if vehicle.ID == nil || vehicle.ID.ID == "" {
		return models.VehiclePosition{}, false
	}
	if vehicle.Trip == nil {
		return models.VehiclePosition{}, false
	}

	tripID, err := strconv.ParseInt(vehicle.Trip.ID.ID, 10, 64)
	if err != nil {
		return models.VehiclePosition{}, false
	}
	if _, err := p.queries.TripByID(ctx, tripID); err != nil {
		return models.VehiclePosition{}, false
	}

	ts := time.Now().UTC()
	if vehicle.Timestamp != nil {
		ts = *vehicle.Timestamp
	}

	position := models.VehiclePosition{
		VehicleNo:         vehicle.ID.ID,
		TripID:            tripID,
		Timestamp:         ts,
		LastStopTimestamp: ts,
	}
	if vehicle.Position != nil {
		if vehicle.Position.Latitude != nil && vehicle.Position.Longitude != nil {
			lat := float64(*vehicle.Position.Latitude)
			lon := float64(*vehicle.Position.Longitude)
			position.Lat = &lat
			position.Lon = &lon
		}
		if vehicle.Position.Bearing != nil {
			bearing := float64(*vehicle.Position.Bearing)
			position.BearingDeg = &bearing
		}
		if vehicle.Position.Speed != nil {
			speed := float64(*vehicle.Position.Speed)
			position.SpeedMps = &speed
		}
	}
	return position, true
}
