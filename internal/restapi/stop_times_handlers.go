package restapi

import (
	"fmt"
	"net/http"

	"github.com/bebraradar/bebraradar/internal/models"
)

func (api *RestAPI) getStopTimesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.tripIDFromParams(w, r)
	if !ok {
		return
	}
	if _, err := api.Store.Queries.TripByID(r.Context(), id); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}

	stopTimes, err := api.Store.Queries.StopTimesForTrip(r.Context(), id)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if stopTimes == nil {
		stopTimes = []models.StopTime{}
	}
	api.sendJSON(w, r, http.StatusOK, stopTimes)
}

// replaceStopTimesHandler atomically rewrites all stop times of one trip.
func (api *RestAPI) replaceStopTimesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.tripIDFromParams(w, r)
	if !ok {
		return
	}
	if _, err := api.Store.Queries.TripByID(r.Context(), id); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}

	var stopTimes []models.StopTime
	if !api.readJSON(w, r, &stopTimes) {
		return
	}

	seen := make(map[int]struct{}, len(stopTimes))
	for _, st := range stopTimes {
		if st.StopSequence <= 0 {
			api.badRequestResponse(w, r, "stopSequence must be positive")
			return
		}
		if _, dup := seen[st.StopSequence]; dup {
			api.badRequestResponse(w, r, fmt.Sprintf("duplicate stopSequence %d", st.StopSequence))
			return
		}
		seen[st.StopSequence] = struct{}{}

		if _, err := api.Store.Queries.StopByID(r.Context(), st.StopID); err != nil {
			api.referenceError(w, r, err, fmt.Sprintf("Stop not found: %s", st.StopID))
			return
		}
	}

	if err := api.Store.Queries.ReplaceStopTimesForTrip(r.Context(), id, stopTimes); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	stored, err := api.Store.Queries.StopTimesForTrip(r.Context(), id)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if stored == nil {
		stored = []models.StopTime{}
	}
	api.sendJSON(w, r, http.StatusOK, stored)
}
