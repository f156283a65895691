package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brian/internal/api"
	"brian/internal/render"
)

func item(id string, created time.Time) api.KnowledgeItem {
	return api.KnowledgeItem{ID: id, Title: id, ItemType: api.TypeNote, CreatedAt: created}
}

func TestGroupByDay(t *testing.T) {
	day1 := time.Date(2026, time.August, 10, 9, 0, 0, 0, time.Local)
	day2 := time.Date(2026, time.August, 11, 9, 0, 0, 0, time.Local)

	groups := render.GroupByDay([]api.KnowledgeItem{
		item("a", day1),
		item("b", day2),
		item("c", day1.Add(5 * time.Hour)),
	})

	require.Len(t, groups, 2)

	// Groups keep first-seen order, and same-day items land together
	// in input order.
	assert.Equal(t, []string{"a", "c"}, ids(groups[0].Items))
	assert.Equal(t, []string{"b"}, ids(groups[1].Items))

	// Keys are fixed-format dates, not locale strings.
	assert.Equal(t, "2026-08-10", groups[0].Key)
}

func ids(items []api.KnowledgeItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestGroupByDayEmpty(t *testing.T) {
	assert.Empty(t, render.GroupByDay(nil))
}

func TestMonthRange(t *testing.T) {
	cursor := time.Date(2026, time.February, 14, 16, 30, 0, 0, time.UTC)
	start, end := render.MonthRange(cursor)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC), end)
}

func TestMonthNavigation(t *testing.T) {
	cursor := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)

	prev := render.PrevMonth(cursor)
	assert.Equal(t, time.December, prev.Month())
	assert.Equal(t, 2025, prev.Year())
	assert.Equal(t, 1, prev.Day())

	next := render.NextMonth(cursor)
	assert.Equal(t, time.February, next.Month())
	assert.Equal(t, 1, next.Day())

	assert.Equal(t, "January 2026", render.MonthLabel(cursor))
}

func TestDayGroupLabel(t *testing.T) {
	g := render.DayGroup{Day: time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Monday, Aug 10", g.Label())
}
