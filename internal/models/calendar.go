package models

import "time"

// ServiceCalendar is a GTFS-style service definition: one flag per weekday
// plus an inclusive validity window. Trips reference it by service id.
type ServiceCalendar struct {
	ID        string `json:"serviceId"`
	Monday    bool   `json:"monday"`
	Tuesday   bool   `json:"tuesday"`
	Wednesday bool   `json:"wednesday"`
	Thursday  bool   `json:"thursday"`
	Friday    bool   `json:"friday"`
	Saturday  bool   `json:"saturday"`
	Sunday    bool   `json:"sunday"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
}

// RunsOn reports whether the flag for the given weekday is set. It does not
// consult the validity window.
func (c ServiceCalendar) RunsOn(day time.Weekday) bool {
	flags := [7]bool{c.Sunday, c.Monday, c.Tuesday, c.Wednesday, c.Thursday, c.Friday, c.Saturday}
	return flags[day]
}

// ActiveOn reports whether the calendar is in effect on the given date: the
// date is inside the validity window, boundaries included, and the date's
// weekday flag is set.
func (c ServiceCalendar) ActiveOn(date Date) bool {
	if date.Before(c.StartDate.Time) || date.After(c.EndDate.Time) {
		return false
	}
	return c.RunsOn(date.Weekday())
}
