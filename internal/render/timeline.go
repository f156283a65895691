package render

import (
	"time"

	"brian/internal/api"
)

// dayKeyFormat is the grouping key for timeline day groups. A fixed
// format keeps keys stable regardless of locale, unlike the
// locale-formatted strings the original frontends grouped on.
const dayKeyFormat = "2006-01-02"

// DayGroup is one calendar day's worth of timeline items.
type DayGroup struct {
	Key   string
	Day   time.Time
	Items []api.KnowledgeItem
}

// Label renders the group's day for display.
func (g DayGroup) Label() string {
	return g.Day.Format("Monday, Jan 2")
}

// GroupByDay buckets items by their creation day. Groups appear in the
// order their day is first seen in the input, and items keep their
// input order within a group; no re-sorting happens on either level,
// so API response order is preserved.
func GroupByDay(items []api.KnowledgeItem) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)
	for _, item := range items {
		day := item.CreatedAt.Local()
		key := day.Format(dayKeyFormat)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{
				Key: key,
				Day: time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
			})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// MonthRange returns the first and last instant of the calendar month
// containing cursor, the [start_date, end_date] window of the timeline
// query.
func MonthRange(cursor time.Time) (start, end time.Time) {
	start = time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// PrevMonth moves the timeline cursor one calendar month back.
func PrevMonth(cursor time.Time) time.Time {
	return time.Date(cursor.Year(), cursor.Month()-1, 1, 0, 0, 0, 0, cursor.Location())
}

// NextMonth moves the timeline cursor one calendar month forward.
func NextMonth(cursor time.Time) time.Time {
	return time.Date(cursor.Year(), cursor.Month()+1, 1, 0, 0, 0, 0, cursor.Location())
}

// MonthLabel renders the cursor month for display, e.g. "August 2026".
func MonthLabel(cursor time.Time) string {
	return cursor.Format("January 2006")
}
