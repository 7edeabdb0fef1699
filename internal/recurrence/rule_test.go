package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyAtNine = "DTSTART:20240101T090000Z\nRRULE:FREQ=DAILY;INTERVAL=1"

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name, rule, tz string
	}{
		{"bogus frequency", "FREQ=BOGUS", "UTC"},
		{"missing frequency", "INTERVAL=2", "UTC"},
		{"unknown property", "FREQ=DAILY;COLOR=RED", "UTC"},
		{"empty", "  ", "UTC"},
		{"unknown zone", "FREQ=DAILY", "Mars/Olympus_Mons"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Parse(tc.rule, tc.tz)
			assert.Nil(t, r)

			var invalid *InvalidRuleError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tc.rule, invalid.Rule)
		})
	}
}

func TestIterator_AscendingAndRestartable(t *testing.T) {
	r, err := Parse(dailyAtNine, "UTC")
	require.NoError(t, err)

	it := r.Iterator()
	first, ok := it.Next()
	require.True(t, ok)
	second, ok := it.Next()
	require.True(t, ok)

	assert.Equal(t, utc("2024-01-01T09:00:00Z"), first.UTC())
	assert.True(t, second.After(first))

	again, ok := r.Iterator().Next()
	require.True(t, ok)
	assert.True(t, again.Equal(first))
}

func TestIterator_EndsWithCount(t *testing.T) {
	r, err := Parse("DTSTART:20240101T090000Z\nRRULE:FREQ=WEEKLY;COUNT=2", "UTC")
	require.NoError(t, err)

	it := r.Iterator()
	_, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	assert.False(t, ok)
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestBetween_WindowBounds(t *testing.T) {
	r, err := Parse(dailyAtNine, "UTC")
	require.NoError(t, err)

	got, err := r.Between(utc("2024-01-02T00:00:00Z"), utc("2024-01-03T00:00:00Z"), Limits{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(utc("2024-01-02T09:00:00Z")))

	// start is inclusive, end is exclusive
	got, err = r.Between(utc("2024-01-02T09:00:00Z"), utc("2024-01-04T09:00:00Z"), Limits{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(utc("2024-01-02T09:00:00Z")))
	assert.True(t, got[1].Equal(utc("2024-01-03T09:00:00Z")))
}

func TestBetween_EmptyWindow(t *testing.T) {
	r, err := Parse(dailyAtNine, "UTC")
	require.NoError(t, err)

	got, err := r.Between(utc("2024-01-05T00:00:00Z"), utc("2024-01-05T00:00:00Z"), Limits{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBetween_Limits(t *testing.T) {
	r, err := Parse("DTSTART:20240101T000000Z\nRRULE:FREQ=MINUTELY", "UTC")
	require.NoError(t, err)

	_, err = r.Between(utc("2024-01-01T00:00:00Z"), utc("2024-01-02T00:00:00Z"), Limits{MaxInstants: 100})
	assert.ErrorIs(t, err, ErrIterationLimit)

	_, err = r.Between(utc("2024-06-01T00:00:00Z"), utc("2024-06-01T00:10:00Z"), Limits{MaxScanned: 1000})
	assert.ErrorIs(t, err, ErrIterationLimit)

	got, err := r.Between(utc("2024-01-01T00:00:00Z"), utc("2024-01-01T00:10:00Z"), Limits{})
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestBetween_KeepsWallClockAcrossDST(t *testing.T) {
	r, err := Parse("DTSTART;TZID=America/New_York:20240309T090000\nRRULE:FREQ=DAILY;COUNT=3", "America/New_York")
	require.NoError(t, err)

	got, err := r.Between(utc("2024-03-01T00:00:00Z"), utc("2024-03-20T00:00:00Z"), Limits{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	for _, instant := range got {
		assert.Equal(t, 9, instant.Hour())
		assert.Equal(t, "America/New_York", instant.Location().String())
	}
	assert.Equal(t, 14, got[0].UTC().Hour())
	assert.Equal(t, 13, got[2].UTC().Hour())
}

func TestParse_BareRuleNeedsAnchor(t *testing.T) {
	r, err := Parse("FREQ=DAILY", "UTC")
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrMissingStart)

	var invalid *InvalidRuleError
	assert.True(t, errors.As(err, &invalid))
}

func TestParseAt_AnchorsBareRule(t *testing.T) {
	r, err := ParseAt("FREQ=DAILY", "UTC", utc("2024-01-01T09:00:30Z"))
	require.NoError(t, err)

	got, err := r.Between(utc("2024-01-02T00:00:00Z"), utc("2024-01-03T00:00:00Z"), Limits{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, utc("2024-01-02T09:00:00Z"), got[0].UTC())

	again, err := ParseAt("FREQ=DAILY", "UTC", utc("2024-01-01T09:00:30Z"))
	require.NoError(t, err)
	first, _ := r.Iterator().Next()
	second, _ := again.Iterator().Next()
	assert.True(t, first.Equal(second))
}

func TestParseAt_DTSTARTWinsOverAnchor(t *testing.T) {
	r, err := ParseAt(dailyAtNine, "UTC", utc("2030-06-01T17:00:00Z"))
	require.NoError(t, err)

	first, ok := r.Iterator().Next()
	require.True(t, ok)
	assert.Equal(t, utc("2024-01-01T09:00:00Z"), first.UTC())
}
