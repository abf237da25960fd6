package repository

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository/base"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	ListTeachers(ctx context.Context) ([]*model.User, error)
	RestrictionPolicies(ctx context.Context, ids []int64) (map[int64]model.RestrictionPolicy, error)
	SetRestrictionPolicy(ctx context.Context, id int64, policy model.RestrictionPolicy) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	ListActiveByDate(ctx context.Context, date model.Date) ([]model.Booking, error)
	ListActiveByTeacher(ctx context.Context, teacherID int64, date model.Date) ([]model.Booking, error)
	ListByStudent(ctx context.Context, studentID int64, from model.Date) ([]model.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, date model.Date, interval model.Interval) error
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
	CompletePast(ctx context.Context, now time.Time) (int64, error)
	LockTeacher(ctx context.Context, teacherID int64) error
}

type AvailabilityRepository interface {
	ListBySubjects(ctx context.Context, subjectIDs []int64, from, to model.Date) ([]model.AvailabilityRecord, error)
	UpsertBatch(ctx context.Context, records []model.AvailabilityRecord) error
}

type FeeRepository interface {
	ListByStudents(ctx context.Context, studentIDs []int64, from, to model.Date) ([]model.FeeRecord, error)
	UpsertBatch(ctx context.Context, records []model.FeeRecord) error
}

// Repositories набор репозиториев, работающих через один Querier
type Repositories struct {
	Users        UserRepository
	Bookings     BookingRepository
	Availability AvailabilityRepository
	Fees         FeeRepository
}

// NewRepositories создаёт репозитории поверх пула или транзакции
func NewRepositories(db base.Querier) Repositories {
	return Repositories{
		Users:        NewUserPostgresRepository(db),
		Bookings:     NewBookingPostgresRepository(db),
		Availability: NewAvailabilityPostgresRepository(db),
		Fees:         NewFeePostgresRepository(db),
	}
}
