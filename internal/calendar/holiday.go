package calendar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rickar/cal/v2"
	cal_us "github.com/rickar/cal/v2/us"
	"github.com/teambition/rrule-go"
)

// recurringEpoch anchors the yearly RRULE used to test a (month, day)
// holiday. Any date far enough in the past works; rrule.YEARLY only needs
// a Dtstart to establish phase, not a meaningful "first occurrence".
var recurringEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// recurringMatches reports whether day is the (month, day) anniversary,
// computed with github.com/teambition/rrule-go rather than comparing
// month/day fields by hand. This is the same technique
// jpfluger-alibs-slim's atime/rruleplus package uses to answer "does this
// date recur": build a bounded RRULE and ask whether it has an occurrence
// in a window, here a single day wide.
func recurringMatches(month time.Month, day int, target time.Time) bool {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:       rrule.YEARLY,
		Bymonth:    []int{int(month)},
		Bymonthday: []int{day},
		Dtstart:    recurringEpoch,
	})
	if err != nil {
		return false
	}

	dayStart := truncateDay(target)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return len(rule.Between(dayStart, dayEnd, true)) > 0
}

// standardCalendar adapts github.com/rickar/cal/v2's BusinessCalendar to
// the Calendar.StandardCalendar interface.
type standardCalendar struct {
	bc *cal.BusinessCalendar
}

func (s *standardCalendar) IsHoliday(date time.Time) bool {
	actual, observed, _ := s.bc.IsHoliday(date)
	return actual || observed
}

// registry stores named standard calendars, mirroring the ISO-keyed
// registry in jpfluger-alibs-slim's atime/rruleplus/calendar.go
// (NewCalendar/GetCalendar/SetCalendar).
var (
	registryMu sync.RWMutex
	registry   = make(map[string]StandardCalendar)
)

// NewStandardCalendar builds a named standard holiday calendar. Currently
// "us" is supported, backed by github.com/rickar/cal/v2/us.
func NewStandardCalendar(name string) (StandardCalendar, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("calendar: empty standard calendar name")
	}

	bc := cal.NewBusinessCalendar()
	switch name {
	case "us":
		bc.AddHoliday(cal_us.Holidays...)
	default:
		return nil, fmt.Errorf("calendar: unsupported standard calendar %q", name)
	}

	return &standardCalendar{bc: bc}, nil
}

// RegisterStandardCalendar stores a calendar under a normalized name for
// later retrieval with StandardCalendarByName.
func RegisterStandardCalendar(name string, c StandardCalendar) {
	name = normalizeName(name)
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = c
}

// StandardCalendarByName retrieves a previously registered standard
// calendar, or nil if none is registered under that name.
func StandardCalendarByName(name string) StandardCalendar {
	name = normalizeName(name)
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
