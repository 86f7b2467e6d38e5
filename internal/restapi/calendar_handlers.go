package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/bebraradar/bebraradar/internal/models"
)

func (api *RestAPI) listCalendarsHandler(w http.ResponseWriter, r *http.Request) {
	calendars, err := api.Store.Queries.AllCalendars(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if calendars == nil {
		calendars = []models.ServiceCalendar{}
	}
	api.sendJSON(w, r, http.StatusOK, calendars)
}

func (api *RestAPI) getCalendarHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	calendar, err := api.Store.Queries.CalendarByID(r.Context(), id)
	if err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, calendar)
}

func (api *RestAPI) createCalendarHandler(w http.ResponseWriter, r *http.Request) {
	var calendar models.ServiceCalendar
	if !api.readJSON(w, r, &calendar) {
		return
	}
	if !api.validateCalendar(w, r, calendar) {
		return
	}
	if err := api.Store.Queries.CreateCalendar(r.Context(), calendar); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusCreated, calendar)
}

func (api *RestAPI) replaceCalendarHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	var calendar models.ServiceCalendar
	if !api.readJSON(w, r, &calendar) {
		return
	}
	if calendar.ID != "" && calendar.ID != id {
		api.badRequestResponse(w, r, "serviceId in body does not match URL")
		return
	}
	calendar.ID = id
	if !api.validateCalendar(w, r, calendar) {
		return
	}
	if err := api.Store.Queries.ReplaceCalendar(r.Context(), calendar); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	api.sendJSON(w, r, http.StatusOK, calendar)
}

func (api *RestAPI) deleteCalendarHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if err := api.Store.Queries.DeleteCalendar(r.Context(), id); err != nil {
		api.storageErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *RestAPI) validateCalendar(w http.ResponseWriter, r *http.Request, c models.ServiceCalendar) bool {
	if c.ID == "" {
		api.badRequestResponse(w, r, "serviceId is required")
		return false
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		api.badRequestResponse(w, r, "startDate and endDate are required")
		return false
	}
	if c.EndDate.Before(c.StartDate.Time) {
		api.badRequestResponse(w, r, "startDate must not be after endDate")
		return false
	}
	return true
}
