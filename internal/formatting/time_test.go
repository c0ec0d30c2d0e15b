package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "Понедельник", WeekdayName(time.Monday))
	assert.Equal(t, "Вс", WeekdayShort(time.Sunday))
	assert.Equal(t, "?", WeekdayShort(time.Weekday(9)))
	assert.Equal(t, "Декабрь", MonthName(time.December))
	assert.Equal(t, "", MonthName(time.Month(13)))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02.06.2025", FormatDate(d))
	assert.Equal(t, "02.06", FormatDayMonth(d))
}
