package restapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bebraradar/bebraradar/internal/models"
	"github.com/bebraradar/bebraradar/transitdb"
)

// resolveTripReferences checks that every entity a trip points at exists and
// writes a 404 naming the missing one. The shape reference is optional.
func (api *RestAPI) resolveTripReferences(w http.ResponseWriter, r *http.Request, trip models.Trip) bool {
	ctx := r.Context()

	if _, err := api.Store.Queries.RouteByID(ctx, trip.RouteID); err != nil {
		return api.referenceError(w, r, err, fmt.Sprintf("Route not found: %s", trip.RouteID))
	}
	if _, err := api.Store.Queries.CalendarByID(ctx, trip.ServiceID); err != nil {
		return api.referenceError(w, r, err, fmt.Sprintf("Service calendar not found: %s", trip.ServiceID))
	}
	if trip.ShapeID != "" {
		if _, err := api.Store.Queries.ShapeByID(ctx, trip.ShapeID); err != nil {
			return api.referenceError(w, r, err, fmt.Sprintf("Shape not found: %s", trip.ShapeID))
		}
	}
	return true
}

func (api *RestAPI) referenceError(w http.ResponseWriter, r *http.Request, err error, message string) bool {
	if errors.Is(err, transitdb.ErrNotFound) {
		api.notFoundResponse(w, r, message)
	} else {
		api.serverErrorResponse(w, r, err)
	}
	return false
}
