package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	r := Day(time.Date(2026, 10, 14, 13, 45, 0, 0, loc), loc)

	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, loc), r.From)
	assert.Equal(t, time.Date(2026, 10, 14, 23, 59, 59, 999999999, loc), r.To)
	assert.Equal(t, Day(r.To.Add(time.Nanosecond), loc).From, r.To.Add(time.Nanosecond), "next day starts one nanosecond later")
}

func TestDayUsesLocationNotInputZone(t *testing.T) {
	loc := time.FixedZone("UTC+1", 3600)
	// 23:30 UTC on the 14th is already the 15th in UTC+1
	r := Day(time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC), loc)
	assert.Equal(t, 15, r.From.Day())
	assert.Equal(t, time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC), r.UTC().From)
}

func TestMonthBounds(t *testing.T) {
	r := Month(time.Date(2024, 2, 10, 8, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), r.To)

	dec := Month(time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2026, 12, 31, 23, 59, 59, 999999999, time.UTC), dec.To)
}

func TestKeys(t *testing.T) {
	d := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-05", DayKey(d, time.UTC))
	assert.Equal(t, "2026-03", MonthKey(d, time.UTC))
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

	got, err := ParseDate("", time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = ParseDate("2026-01-31", time.UTC, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("31/01/2026", time.UTC, now)
	assert.Error(t, err)
}
