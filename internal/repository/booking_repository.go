package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, teacher_id, student_id, lesson_date, start_minute, end_minute, status, created_at, updated_at`

type BookingPostgresRepository struct {
	*base.Repository
}

func NewBookingPostgresRepository(db base.Querier) *BookingPostgresRepository {
	return &BookingPostgresRepository{Repository: base.NewRepository(db)}
}

func scanBooking(row pgx.Row) (model.Booking, error) {
	var (
		booking    model.Booking
		lessonDate time.Time
	)
	err := row.Scan(
		&booking.ID,
		&booking.TeacherID,
		&booking.StudentID,
		&lessonDate,
		&booking.Interval.Start,
		&booking.Interval.End,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	booking.Date = model.DateOf(lessonDate)
	return booking, nil
}

func (r *BookingPostgresRepository) list(ctx context.Context, op, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.DB().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

// Create создаёт новое бронирование
func (r *BookingPostgresRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (teacher_id, student_id, lesson_date, start_minute, end_minute, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.DB().QueryRow(
		ctx, query,
		booking.TeacherID,
		booking.StudentID,
		booking.Date.Time(),
		booking.Interval.Start,
		booking.Interval.End,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingPostgresRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.DB().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// ListActiveByDate получает все неотменённые бронирования на дату
func (r *BookingPostgresRepository) ListActiveByDate(ctx context.Context, date model.Date) ([]model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE lesson_date = $1 AND status <> 'cancelled'
		ORDER BY start_minute, id
	`

	return r.list(ctx, "list bookings by date", query, date.Time())
}

// ListActiveByTeacher получает неотменённые бронирования учителя на дату
func (r *BookingPostgresRepository) ListActiveByTeacher(ctx context.Context, teacherID int64, date model.Date) ([]model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE teacher_id = $1 AND lesson_date = $2 AND status <> 'cancelled'
		ORDER BY start_minute, id
	`

	return r.list(ctx, "list bookings by teacher", query, teacherID, date.Time())
}

// ListByStudent получает бронирования студента начиная с даты
func (r *BookingPostgresRepository) ListByStudent(ctx context.Context, studentID int64, from model.Date) ([]model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE student_id = $1 AND lesson_date >= $2
		ORDER BY lesson_date, start_minute
	`

	return r.list(ctx, "list bookings by student", query, studentID, from.Time())
}

// UpdateSchedule переносит бронирование на другую дату и время
func (r *BookingPostgresRepository) UpdateSchedule(ctx context.Context, id int64, date model.Date, interval model.Interval) error {
	query := `
		UPDATE bookings
		SET lesson_date = $1, start_minute = $2, end_minute = $3, updated_at = now()
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, date.Time(), interval.Start, interval.End, id)
	if err != nil {
		return fmt.Errorf("update booking schedule: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// UpdateStatus обновляет статус бронирования
func (r *BookingPostgresRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// CompletePast помечает прошедшие подтверждённые занятия проведёнными.
// now передаётся в часовом поясе центра.
func (r *BookingPostgresRepository) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'completed', updated_at = now()
		WHERE status = 'confirmed'
		  AND lesson_date + make_interval(mins => end_minute) <= $1::timestamp
	`

	wall := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.UTC)

	affected, err := r.ExecAffected(ctx, query, wall)
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}

	return affected, nil
}

// LockTeacher берёт транзакционную блокировку расписания учителя.
// Работает только внутри транзакции.
func (r *BookingPostgresRepository) LockTeacher(ctx context.Context, teacherID int64) error {
	if _, err := r.DB().Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, teacherID); err != nil {
		return fmt.Errorf("lock teacher schedule: %w", err)
	}
	return nil
}
