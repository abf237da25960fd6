package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookDataRoundTrip(t *testing.T) {
	req := LessonRequest{
		TeacherID: 123456,
		Date:      model.Date{Year: 2026, Month: time.October, Day: 20},
		Interval:  model.Interval{Start: 600, End: 690},
	}

	data := BookData(req)
	assert.Equal(t, "book:123456:20261020:600:690", data)

	parsed, err := ParseBookData(data)
	require.NoError(t, err)
	assert.Equal(t, req, parsed)
}

func TestParseBookDataErrors(t *testing.T) {
	for _, data := range []string{"book:", "book:1:20261020:600", "book:x:20261020:600:660", "grid:1:20261020:600:660", "book:1:2026:600:660"} {
		_, err := ParseBookData(data)
		assert.ErrorIs(t, err, ErrInvalidFormat, data)
	}
}

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("cancel_booking:42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseIDFromCallback("cancel_booking")
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, ErrorMessage(fmt.Errorf("book: %w", service.ErrTeacherBusy)), "уже есть занятие")
	assert.Contains(t, ErrorMessage(&model.InvalidIntervalError{}), "позже начала")
	assert.Equal(t, "❌ Произошла ошибка", ErrorMessage(errors.New("boom")))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(errors.New("bad request, Bad Request: message is not modified: specified new message content")))
}
