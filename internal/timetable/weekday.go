package timetable

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday marks weekday tokens that cannot be resolved. Handlers
// translate it to a client error.
var ErrInvalidWeekday = errors.New("invalid weekday")

// weekdayTokens maps normalized English and Russian day names, full and
// abbreviated, to the weekday they denote.
var weekdayTokens = map[string]time.Weekday{
	"MON":    time.Monday,
	"MONDAY": time.Monday,
	"ПН":          time.Monday,
	"ПОНЕДЕЛЬНИК": time.Monday,

	"TUE":     time.Tuesday,
	"TUESDAY": time.Tuesday,
	"ВТ":      time.Tuesday,
	"ВТОРНИК": time.Tuesday,

	"WED":       time.Wednesday,
	"WEDNESDAY": time.Wednesday,
	"СР":    time.Wednesday,
	"СРЕДА": time.Wednesday,

	"THU":      time.Thursday,
	"THURSDAY": time.Thursday,
	"ЧТ":      time.Thursday,
	"ЧЕТВЕРГ": time.Thursday,

	"FRI":    time.Friday,
	"FRIDAY": time.Friday,
	"ПТ":      time.Friday,
	"ПЯТНИЦА": time.Friday,

	"SAT":      time.Saturday,
	"SATURDAY": time.Saturday,
	"СБ":      time.Saturday,
	"СУББОТА": time.Saturday,

	"SUN":    time.Sunday,
	"SUNDAY": time.Sunday,
	"ВС":          time.Sunday,
	"ВОСКРЕСЕНЬЕ": time.Sunday,
	// Common misspelling, accepted for compatibility with existing clients.
	"ВОСКРЕСЕНИЕ": time.Sunday,
}

// ParseWeekday resolves a weekday token. It accepts case-insensitive English
// and Russian names and abbreviations ("thu", "Thursday", "ЧТ", "четверг").
func ParseWeekday(token string) (time.Weekday, error) {
	normalized := strings.ToUpper(strings.TrimSpace(token))
	if normalized == "" {
		return 0, fmt.Errorf("%w: empty token", ErrInvalidWeekday)
	}
	day, ok := weekdayTokens[normalized]
	if !ok {
		return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidWeekday, token)
	}
	return day, nil
}
