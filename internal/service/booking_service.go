package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository"
	"go.uber.org/zap"
)

type BookingService struct {
	repos     repository.Repositories
	txManager repository.TxManager
	location  *time.Location
	clock     func() time.Time
	logger    *zap.Logger
}

func NewBookingService(
	repos repository.Repositories,
	txManager repository.TxManager,
	location *time.Location,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repos:     repos,
		txManager: txManager,
		location:  location,
		clock:     time.Now,
		logger:    logger,
	}
}

func (s *BookingService) startsAt(date model.Date, interval model.Interval) time.Time {
	return time.Date(date.Year, date.Month, date.Day, 0, interval.Start, 0, 0, s.location)
}

// BookLesson записывает студента к учителю.
// Учитель не должен быть занят, а его доступность (если проверяется) должна покрывать интервал.
func (s *BookingService) BookLesson(ctx context.Context, student *model.User, teacherID int64, date model.Date, interval model.Interval) (*model.Booking, error) {
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	if s.startsAt(date, interval).Before(s.clock()) {
		return nil, ErrBookingInPast
	}

	booking := &model.Booking{
		TeacherID: teacherID,
		StudentID: student.ID,
		Date:      date,
		Interval:  interval,
		Status:    model.BookingStatusConfirmed,
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		teacher, err := repos.Users.GetByID(ctx, teacherID)
		if err != nil {
			return fmt.Errorf("get teacher: %w", err)
		}

		if teacher == nil || !teacher.IsActive {
			return ErrUserNotFound
		}

		if !teacher.IsTeacher() {
			return ErrNotATeacher
		}

		// Параллельные записи к одному учителю выполняются по очереди
		if err := repos.Bookings.LockTeacher(ctx, teacherID); err != nil {
			return err
		}

		if err := checkTeacher(ctx, repos, teacherID, date, interval, 0); err != nil {
			return err
		}

		return repos.Bookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("student_id", student.ID),
		zap.Int64("teacher_id", teacherID),
		zap.String("date", date.String()),
		zap.String("interval", interval.String()),
	)

	return booking, nil
}

// Reschedule переносит занятие. Старое время самого занятия конфликтом не считается.
func (s *BookingService) Reschedule(ctx context.Context, requester *model.User, bookingID int64, date model.Date, interval model.Interval) (*model.Booking, error) {
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	if s.startsAt(date, interval).Before(s.clock()) {
		return nil, ErrBookingInPast
	}

	var booking *model.Booking
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		booking, err = repos.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}

		if booking == nil {
			return ErrBookingNotFound
		}

		if err := canManage(requester, booking); err != nil {
			return err
		}

		if !isOpen(booking.Status) {
			return ErrBookingNotActive
		}

		if err := repos.Bookings.LockTeacher(ctx, booking.TeacherID); err != nil {
			return err
		}

		if err := checkTeacher(ctx, repos, booking.TeacherID, date, interval, booking.ID); err != nil {
			return err
		}

		if err := repos.Bookings.UpdateSchedule(ctx, booking.ID, date, interval); err != nil {
			return err
		}

		booking.Date = date
		booking.Interval = interval
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson rescheduled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("requester_id", requester.ID),
		zap.String("date", date.String()),
		zap.String("interval", interval.String()),
	)

	return booking, nil
}

// CancelBooking отменяет бронирование
func (s *BookingService) CancelBooking(ctx context.Context, requester *model.User, bookingID int64) error {
	booking, err := s.repos.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("get booking: %w", err)
	}

	if booking == nil {
		return ErrBookingNotFound
	}

	if err := canManage(requester, booking); err != nil {
		return err
	}

	if !isOpen(booking.Status) {
		return ErrBookingNotActive
	}

	err = s.repos.Bookings.UpdateStatus(ctx, bookingID, model.BookingStatusCancelled)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("user_id", requester.ID),
	)

	return nil
}

// GetStudentBookings получает предстоящие бронирования студента
func (s *BookingService) GetStudentBookings(ctx context.Context, studentID int64) ([]model.Booking, error) {
	today := model.DateOf(s.clock().In(s.location))
	return s.repos.Bookings.ListByStudent(ctx, studentID, today)
}

// GetTeacherBookings получает активные занятия учителя на ближайшие дни, начиная с сегодняшнего
func (s *BookingService) GetTeacherBookings(ctx context.Context, teacherID int64, days int) ([]model.Booking, error) {
	today := model.DateOf(s.clock().In(s.location))

	var result []model.Booking
	for i := 0; i < days; i++ {
		bookings, err := s.repos.Bookings.ListActiveByTeacher(ctx, teacherID, today.AddDays(i))
		if err != nil {
			return nil, fmt.Errorf("list teacher bookings: %w", err)
		}
		result = append(result, bookings...)
	}
	return result, nil
}

// CompletePastBookings помечает прошедшие занятия проведёнными
func (s *BookingService) CompletePastBookings(ctx context.Context) (int64, error) {
	return s.repos.Bookings.CompletePast(ctx, s.clock().In(s.location))
}

func canManage(user *model.User, booking *model.Booking) error {
	if user.IsAdmin() || booking.StudentID == user.ID || booking.TeacherID == user.ID {
		return nil
	}
	return ErrForbidden
}

func isOpen(status model.BookingStatus) bool {
	return status == model.BookingStatusPending || status == model.BookingStatusConfirmed
}
