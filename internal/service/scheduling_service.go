package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository"
	"github.com/Freeeeeet/tutor_dashboard/internal/scheduling"
	"go.uber.org/zap"
)

// TeacherEligibility результат проверки одного учителя
type TeacherEligibility struct {
	Teacher     *model.User
	Busy        bool
	Unavailable bool
}

// Eligible учитель может провести занятие
func (e TeacherEligibility) Eligible() bool {
	return !e.Busy && !e.Unavailable
}

type SchedulingService struct {
	repos  repository.Repositories
	logger *zap.Logger
}

func NewSchedulingService(repos repository.Repositories, logger *zap.Logger) *SchedulingService {
	return &SchedulingService{
		repos:  repos,
		logger: logger,
	}
}

// CheckTeachers проверяет всех активных учителей для интервала на дату.
// excludeBookingID - переносимое бронирование, 0 если нет.
func (s *SchedulingService) CheckTeachers(ctx context.Context, date model.Date, interval model.Interval, excludeBookingID int64) ([]TeacherEligibility, error) {
	if err := interval.Validate(); err != nil {
		return nil, err
	}

	teachers, err := s.repos.Users.ListTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	if len(teachers) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(teachers))
	for _, teacher := range teachers {
		ids = append(ids, teacher.ID)
	}

	bookings, err := s.repos.Bookings.ListActiveByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	records, err := s.repos.Availability.ListBySubjects(ctx, ids, date, date)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}

	policies, err := s.repos.Users.RestrictionPolicies(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get restriction policies: %w", err)
	}

	result, err := scheduling.Resolve(scheduling.Request{
		Target:           interval,
		Bookings:         bookings,
		Availability:     scheduling.IndexAvailability(records),
		Policy:           scheduling.PolicyIndex(policies),
		Subjects:         ids,
		Date:             date,
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		return nil, err
	}

	eligibility := make([]TeacherEligibility, 0, len(teachers))
	for _, teacher := range teachers {
		eligibility = append(eligibility, TeacherEligibility{
			Teacher:     teacher,
			Busy:        result.IsBusy(teacher.ID),
			Unavailable: result.IsUnavailable(teacher.ID),
		})
	}

	s.logger.Debug("Teachers checked",
		zap.String("date", date.String()),
		zap.String("interval", interval.String()),
		zap.Int("teachers", len(teachers)),
		zap.Int("busy", len(result.Busy)),
		zap.Int("unavailable", len(result.Unavailable)),
	)

	return eligibility, nil
}

// checkTeacher проверяет одного учителя по данным из repos (обычно внутри транзакции)
func checkTeacher(ctx context.Context, repos repository.Repositories, teacherID int64, date model.Date, interval model.Interval, excludeBookingID int64) error {
	bookings, err := repos.Bookings.ListActiveByTeacher(ctx, teacherID, date)
	if err != nil {
		return fmt.Errorf("list teacher bookings: %w", err)
	}

	records, err := repos.Availability.ListBySubjects(ctx, []int64{teacherID}, date, date)
	if err != nil {
		return fmt.Errorf("list teacher availability: %w", err)
	}

	policies, err := repos.Users.RestrictionPolicies(ctx, []int64{teacherID})
	if err != nil {
		return fmt.Errorf("get restriction policy: %w", err)
	}

	result, err := scheduling.Resolve(scheduling.Request{
		Target:           interval,
		Bookings:         bookings,
		Availability:     scheduling.IndexAvailability(records),
		Policy:           scheduling.PolicyIndex(policies),
		Subjects:         []int64{teacherID},
		Date:             date,
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		return err
	}

	switch {
	case result.IsBusy(teacherID):
		return ErrTeacherBusy
	case result.IsUnavailable(teacherID):
		return ErrTeacherUnavailable
	}
	return nil
}
