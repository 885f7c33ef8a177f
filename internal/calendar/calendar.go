// Package calendar normalizes wall-clock arithmetic against enabled
// Holiday and Blackout scheduling rules. It is the engine's only notion
// of "working day" and is consulted by internal/scheduler for every
// rule-aware date computation.
package calendar

import (
	"time"

	"schedgen/internal/model"
)

// Calendar classifies dates as working or non-working and performs
// working-day arithmetic. It holds no state beyond the rules it was built
// from — constructing one is cheap and callers may build a fresh Calendar
// per recalculation.
type Calendar struct {
	holidays  []*model.HolidayPayload
	blackouts []*model.BlackoutPayload
	standard  StandardCalendar // optional, e.g. a named public-holiday set
}

// StandardCalendar is satisfied by a named holiday set such as the
// github.com/rickar/cal/v2-backed calendars registered in holiday.go.
// Layering one on top of rule-based holidays lets the engine answer
// "is this a US federal holiday" without the host hand-entering every date.
type StandardCalendar interface {
	IsHoliday(date time.Time) bool
}

// New builds a Calendar from the enabled subset of the given rules. Rules
// of any other kind, and disabled Holiday/Blackout rules, are ignored.
func New(rules []model.SchedulingRule, standard StandardCalendar) *Calendar {
	c := &Calendar{standard: standard}
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		switch r.Kind {
		case model.RuleHoliday:
			if r.Holiday != nil {
				c.holidays = append(c.holidays, r.Holiday)
			}
		case model.RuleBlackout:
			if r.Blackout != nil {
				c.blackouts = append(c.blackouts, r.Blackout)
			}
		}
	}
	return c
}

// truncateDay anchors a timestamp to its UTC day boundary. The engine
// anchors all date math to UTC throughout rather than mixing timezones.
func truncateDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// sameDay reports whether a and b fall on the same UTC calendar day.
func sameDay(a, b time.Time) bool {
	return truncateDay(a).Equal(truncateDay(b))
}

// IsNonWorking reports whether date matches any enabled holiday rule
// (weekday set, explicit date set, or recurring month/day), falls inside
// any enabled blackout range (inclusive), or is flagged by an attached
// standard calendar.
func (c *Calendar) IsNonWorking(date time.Time) bool {
	day := truncateDay(date)

	for _, h := range c.holidays {
		if holidayMatches(h, day) {
			return true
		}
	}

	for _, b := range c.blackouts {
		start, end := truncateDay(b.Start), truncateDay(b.End)
		if !day.Before(start) && !day.After(end) {
			return true
		}
	}

	if c.standard != nil && c.standard.IsHoliday(day) {
		return true
	}

	return false
}

// AddWorkingDays advances from by n calendar days, counting only working
// days. It first skips forward over any non-working days at from, anchoring
// the result to the next working day; n=0 returns that anchor unchanged. A
// negative n delegates to SubtractWorkingDays with the sign flipped, which
// lets signed Lag offsets flow through this same operation.
func (c *Calendar) AddWorkingDays(from time.Time, n int) time.Time {
	cur := truncateDay(from)
	for c.IsNonWorking(cur) {
		cur = cur.AddDate(0, 0, 1)
	}

	if n < 0 {
		return c.SubtractWorkingDays(cur, -n)
	}

	remaining := n
	for remaining > 0 {
		cur = cur.AddDate(0, 0, 1)
		if !c.IsNonWorking(cur) {
			remaining--
		}
	}
	return cur
}

// SubtractWorkingDays is the mirror of AddWorkingDays: it skips non-working
// days backward first, then steps backward one day at a time counting
// working days.
func (c *Calendar) SubtractWorkingDays(from time.Time, n int) time.Time {
	cur := truncateDay(from)
	for c.IsNonWorking(cur) {
		cur = cur.AddDate(0, 0, -1)
	}

	if n < 0 {
		return c.AddWorkingDays(cur, -n)
	}

	remaining := n
	for remaining > 0 {
		cur = cur.AddDate(0, 0, -1)
		if !c.IsNonWorking(cur) {
			remaining--
		}
	}
	return cur
}

// WorkingDaysBetween counts working days in [a, b). If b precedes a, the
// result is the negation of the count over [b, a).
func (c *Calendar) WorkingDaysBetween(a, b time.Time) int {
	start, end := truncateDay(a), truncateDay(b)
	if end.Before(start) {
		return -c.WorkingDaysBetween(end, start)
	}

	count := 0
	for cur := start; cur.Before(end); cur = cur.AddDate(0, 0, 1) {
		if !c.IsNonWorking(cur) {
			count++
		}
	}
	return count
}

func holidayMatches(h *model.HolidayPayload, day time.Time) bool {
	switch h.Variant {
	case model.HolidayWeekdaySet:
		for _, wd := range h.Weekdays {
			if day.Weekday() == wd {
				return true
			}
		}
	case model.HolidayExplicit:
		for _, d := range h.Dates {
			if sameDay(d, day) {
				return true
			}
		}
	case model.HolidayRecurring:
		return recurringMatches(h.Month, h.Day, day)
	}
	return false
}
