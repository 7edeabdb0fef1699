package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestWindow_WithTime(t *testing.T) {
	start, end, err := Window("2024-01-01", ptr("09:30"), "Asia/Tokyo", 90)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), end.UTC())
}

func TestWindow_DateOnlySpansDay(t *testing.T) {
	start, end, err := Window("2024-01-01", nil, "UTC", 30)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), end)
}

func TestWindow_Errors(t *testing.T) {
	_, _, err := Window("01/02/2024", nil, "UTC", 0)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, _, err = Window("2024-01-02", ptr("9am"), "UTC", 0)
	assert.ErrorIs(t, err, ErrInvalidClock)

	_, _, err = Window("2024-01-02", nil, "Nowhere/Town", 0)
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestLocalDateTime(t *testing.T) {
	date, clock, err := LocalDateTime(time.Date(2024, 1, 1, 23, 15, 0, 0, time.UTC), "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", date)
	assert.Equal(t, "08:15", clock)
}
