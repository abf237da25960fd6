package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPluralizeDays(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "день"},
		{2, "дня"},
		{4, "дня"},
		{5, "дней"},
		{11, "дней"},
		{12, "дней"},
		{21, "день"},
		{22, "дня"},
		{111, "дней"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeDays(tt.count), "count %d", tt.count)
	}
}

func TestFormatDates(t *testing.T) {
	d := model.Date{Year: 2026, Month: time.October, Day: 20}

	assert.Equal(t, "20.10.2026", FormatDate(d))
	assert.Equal(t, "Вт 20.10", FormatDateWithWeekday(d))
	assert.Equal(t, "20.10.2026 10:00-11:30", FormatLesson(d, model.Interval{Start: 600, End: 690}))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "2 ч", FormatDuration(120))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}
