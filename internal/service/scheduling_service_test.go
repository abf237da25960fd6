package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var lessonDay = model.Date{Year: 2026, Month: time.October, Day: 20}

func TestCheckTeachers(t *testing.T) {
	store := newFakeStore(
		teacher(1, model.RestrictionChecked),
		teacher(2, model.RestrictionChecked),
		teacher(3, model.RestrictionUnrestricted),
		student(10),
	)
	store.bookings.bookings = []*model.Booking{
		{ID: 1, TeacherID: 1, StudentID: 10, Date: lessonDay, Interval: model.Interval{Start: 570, End: 630}, Status: model.BookingStatusConfirmed},
		{ID: 2, TeacherID: 3, StudentID: 10, Date: lessonDay.AddDays(1), Interval: model.Interval{Start: 600, End: 660}, Status: model.BookingStatusConfirmed},
	}
	store.availability.put(2, lessonDay, model.SlotFlags{Morning: false, Afternoon: true, Evening: true})

	svc := NewSchedulingService(store.repos, zap.NewNop())

	t.Run("busy, unavailable and free teachers", func(t *testing.T) {
		result, err := svc.CheckTeachers(context.Background(), lessonDay, model.Interval{Start: 600, End: 660}, 0)
		require.NoError(t, err)
		require.Len(t, result, 3)

		assert.Equal(t, int64(1), result[0].Teacher.ID)
		assert.True(t, result[0].Busy)
		assert.False(t, result[0].Unavailable)

		assert.False(t, result[1].Busy)
		assert.True(t, result[1].Unavailable)

		assert.True(t, result[2].Eligible(), "booking on another day does not count")
	})

	t.Run("excluding the booking frees the teacher", func(t *testing.T) {
		result, err := svc.CheckTeachers(context.Background(), lessonDay, model.Interval{Start: 600, End: 660}, 1)
		require.NoError(t, err)
		assert.True(t, result[0].Eligible())
	})

	t.Run("afternoon lesson is fine for teacher 2", func(t *testing.T) {
		result, err := svc.CheckTeachers(context.Background(), lessonDay, model.Interval{Start: 780, End: 840}, 0)
		require.NoError(t, err)
		assert.True(t, result[1].Eligible())
	})

	t.Run("invalid interval", func(t *testing.T) {
		_, err := svc.CheckTeachers(context.Background(), lessonDay, model.Interval{Start: 660, End: 600}, 0)
		var invalid *model.InvalidIntervalError
		assert.True(t, errors.As(err, &invalid))
	})
}

func TestCheckTeachersWithoutTeachers(t *testing.T) {
	store := newFakeStore(student(10))
	svc := NewSchedulingService(store.repos, zap.NewNop())

	result, err := svc.CheckTeachers(context.Background(), lessonDay, model.Interval{Start: 600, End: 660}, 0)
	require.NoError(t, err)
	assert.Empty(t, result)
}
