package dateutil_test

import (
	"testing"
	"time"

	"go-commission/internal/shared/dateutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeIsEndInclusive(t *testing.T) {
	loc := dateutil.LoadLocation("America/Sao_Paulo")

	start, err := dateutil.ParseDate("2026-03-01", loc)
	require.NoError(t, err)
	end, err := dateutil.ParseDate("2026-03-31", loc)
	require.NoError(t, err)

	from, to := dateutil.Range(start, end, loc)

	lastMinute := time.Date(2026, 3, 31, 23, 59, 0, 0, loc)
	assert.False(t, lastMinute.Before(from))
	assert.True(t, lastMinute.Before(to))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, loc), to)
}

func TestDayUsesLocation(t *testing.T) {
	loc := dateutil.LoadLocation("America/Sao_Paulo")
	// 02:00 UTC is still the previous evening in Sao Paulo.
	utc := time.Date(2026, 5, 10, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, 9, dateutil.Day(utc, loc).Day())
}

func TestLoadLocationFallback(t *testing.T) {
	assert.Equal(t, "America/Sao_Paulo", dateutil.LoadLocation("Not/AZone").String())
	assert.Equal(t, "America/Sao_Paulo", dateutil.LoadLocation("").String())
}

func TestOnDateKeepsCalendarDate(t *testing.T) {
	loc := dateutil.LoadLocation("America/Sao_Paulo")
	stored := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	got := dateutil.OnDate(stored, loc)
	assert.Equal(t, "2026-03-15", got.Format(dateutil.Layout))
	assert.Equal(t, loc, got.Location())
}
