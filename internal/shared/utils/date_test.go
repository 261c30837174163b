package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_DateOf_UsesLocationCalendarDay(t *testing.T) {
	instant := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), DateOf(instant, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), DateOf(instant, time.FixedZone("ICT", 7*3600)))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), DateOf(instant, nil))
}

func Test_DaysBetween(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, DaysBetween(due, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(due, due))
	assert.Equal(t, -1, DaysBetween(due, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 60, DaysBetween(due, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), "leap year")
}

func Test_FormatDate(t *testing.T) {
	assert.Equal(t, "2024-02-29", FormatDate(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
}
