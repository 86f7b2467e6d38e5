package restapi

import (
	"errors"
	"net/http"

	"github.com/bebraradar/bebraradar/internal/timetable"
	"github.com/bebraradar/bebraradar/transitdb"
)

type errorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

func (api *RestAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	api.sendJSON(w, r, status, errorBody{Status: status, Error: message})
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusBadRequest, message)
}

func (api *RestAPI) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusNotFound, message)
}

func (api *RestAPI) conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.errorResponse(w, r, http.StatusConflict, message)
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	api.errorResponse(w, r, http.StatusInternalServerError, "internal server error")
}

// storageErrorResponse maps the storage and parser sentinels to HTTP codes;
// anything unrecognized is a 500 with the detail kept out of the body.
func (api *RestAPI) storageErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, transitdb.ErrNotFound):
		api.notFoundResponse(w, r, err.Error())
	case errors.Is(err, transitdb.ErrConflict):
		api.conflictResponse(w, r, err.Error())
	case errors.Is(err, timetable.ErrInvalidWeekday):
		api.badRequestResponse(w, r, err.Error())
	default:
		api.serverErrorResponse(w, r, err)
	}
}
