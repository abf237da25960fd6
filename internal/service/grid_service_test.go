package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type gridServiceSuite struct {
	suite.Suite

	store *fakeStore
	svc   *GridService
}

func TestGridServiceSuite(t *testing.T) {
	suite.Run(t, new(gridServiceSuite))
}

func (s *gridServiceSuite) SetupTest() {
	s.store = newFakeStore(
		teacher(1, model.RestrictionChecked),
		teacher(2, model.RestrictionChecked),
		student(10),
		admin(99),
	)
	s.svc = NewGridService(s.store.repos, s.store.tx, zap.NewNop())
}

func (s *gridServiceSuite) user(id int64) *model.User {
	u, _ := s.store.users.GetByID(context.Background(), id)
	return u
}

func (s *gridServiceSuite) TestOpenLoadsBaseline() {
	s.store.availability.put(1, lessonDay, model.SlotFlags{Morning: false, Afternoon: true, Evening: false})

	grid, err := s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay, 3)
	s.Require().NoError(err)

	s.Equal([]model.Date{lessonDay, lessonDay.AddDays(1), lessonDay.AddDays(2)}, grid.Dates())
	s.Equal(model.SlotFlags{Afternoon: true}, grid.Effective(lessonDay).SlotFlags)
	s.Equal(model.AllSlotFlags(), grid.Effective(lessonDay.AddDays(1)).SlotFlags, "no record means available")
	s.Zero(grid.ChangeCount())
}

func (s *gridServiceSuite) TestFeeGridFallback() {
	grid, err := s.svc.Open(context.Background(), s.user(1), GridFees, 10, lessonDay, 2)
	s.Require().NoError(err)
	s.Equal(model.SlotFlags{}, grid.Effective(lessonDay).SlotFlags)
}

func (s *gridServiceSuite) TestToggleAndSave() {
	_, err := s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay, 7)
	s.Require().NoError(err)

	eff, err := s.svc.Toggle(1, GridTeacherAvailability, lessonDay, model.SlotEvening)
	s.Require().NoError(err)
	s.False(eff.Evening)

	_, err = s.svc.Toggle(1, GridTeacherAvailability, lessonDay.AddDays(2), model.SlotMorning)
	s.Require().NoError(err)

	grid, err := s.svc.Get(1, GridTeacherAvailability)
	s.Require().NoError(err)
	s.Equal(2, grid.ChangeCount())
	s.True(grid.IsFieldChanged(lessonDay, model.SlotEvening))
	s.False(grid.IsFieldChanged(lessonDay, model.SlotMorning))

	result, err := s.svc.Save(context.Background(), 1, GridTeacherAvailability)
	s.Require().NoError(err)
	s.Equal(2, result.Count())
	s.Zero(grid.ChangeCount())
	s.Equal(1, s.store.tx.calls)

	stored, err := s.store.availability.ListBySubjects(context.Background(), []int64{1}, lessonDay, lessonDay.AddDays(6))
	s.Require().NoError(err)
	s.Require().Len(stored, 2)
	s.Equal(model.SlotFlags{Morning: true, Afternoon: true}, stored[0].Slots)
	s.Equal(model.SlotFlags{Afternoon: true, Evening: true}, stored[1].Slots)
	s.Equal(model.SlotFlags{Afternoon: true, Evening: true}, grid.Effective(lessonDay.AddDays(2)).SlotFlags)
}

func (s *gridServiceSuite) TestSaveFailureKeepsChanges() {
	storeErr := errors.New("connection reset")
	s.store.availability.err = storeErr

	_, err := s.svc.Open(context.Background(), s.user(10), GridStudentAvailability, 10, lessonDay, 7)
	s.Require().NoError(err)
	_, err = s.svc.Toggle(10, GridStudentAvailability, lessonDay, model.SlotAfternoon)
	s.Require().NoError(err)

	_, err = s.svc.Save(context.Background(), 10, GridStudentAvailability)
	s.ErrorIs(err, storeErr)

	grid, err := s.svc.Get(10, GridStudentAvailability)
	s.Require().NoError(err)
	s.Equal(1, grid.ChangeCount())
	s.False(grid.Effective(lessonDay).Afternoon)

	s.store.availability.err = nil
	result, err := s.svc.Save(context.Background(), 10, GridStudentAvailability)
	s.Require().NoError(err)
	s.Equal(1, result.Count())
	s.Equal(2, s.store.availability.calls)
}

func (s *gridServiceSuite) TestSaveWithoutChanges() {
	_, err := s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay, 7)
	s.Require().NoError(err)

	result, err := s.svc.Save(context.Background(), 1, GridTeacherAvailability)
	s.Require().NoError(err)
	s.Zero(result.Count())
	s.Zero(s.store.tx.calls)
}

func (s *gridServiceSuite) TestReopen() {
	_, err := s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay, 7)
	s.Require().NoError(err)
	_, err = s.svc.Toggle(1, GridTeacherAvailability, lessonDay, model.SlotMorning)
	s.Require().NoError(err)

	same, err := s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay, 7)
	s.Require().NoError(err)
	s.Equal(1, same.ChangeCount(), "unsaved edits survive reopening the same window")

	_, err = s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay.AddDays(7), 7)
	s.ErrorIs(err, ErrUnsavedChanges)

	s.Require().NoError(s.svc.Discard(1, GridTeacherAvailability))
	next, err := s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay.AddDays(7), 7)
	s.Require().NoError(err)
	s.Equal(lessonDay.AddDays(7), next.From)
}

func (s *gridServiceSuite) TestGridErrors() {
	_, err := s.svc.Toggle(1, GridTeacherAvailability, lessonDay, model.SlotMorning)
	s.ErrorIs(err, ErrGridNotOpen)

	_, err = s.svc.Open(context.Background(), s.user(1), GridTeacherAvailability, 1, lessonDay, 7)
	s.Require().NoError(err)

	_, err = s.svc.Toggle(1, GridTeacherAvailability, lessonDay.AddDays(7), model.SlotMorning)
	s.ErrorIs(err, ErrDateOutsideGrid)

	_, err = s.svc.Toggle(1, GridTeacherAvailability, lessonDay, model.TimeSlot("night"))
	s.Error(err)

	s.svc.Close(1, GridTeacherAvailability)
	_, err = s.svc.Get(1, GridTeacherAvailability)
	s.ErrorIs(err, ErrGridNotOpen)
}

func (s *gridServiceSuite) TestAuthorization() {
	ctx := context.Background()

	tests := []struct {
		name    string
		owner   int64
		kind    GridKind
		subject int64
		wantErr error
	}{
		{name: "teacher edits another teacher", owner: 1, kind: GridTeacherAvailability, subject: 2, wantErr: ErrForbidden},
		{name: "student opens teacher grid", owner: 10, kind: GridTeacherAvailability, subject: 10, wantErr: ErrNotATeacher},
		{name: "teacher opens student grid", owner: 1, kind: GridStudentAvailability, subject: 10, wantErr: ErrForbidden},
		{name: "student opens fees", owner: 10, kind: GridFees, subject: 10, wantErr: ErrForbidden},
		{name: "fees for a teacher", owner: 1, kind: GridFees, subject: 2, wantErr: ErrUserNotFound},
		{name: "admin opens teacher grid", owner: 99, kind: GridTeacherAvailability, subject: 2},
		{name: "admin opens student as teacher", owner: 99, kind: GridStudentAvailability, subject: 1, wantErr: ErrUserNotFound},
		{name: "admin opens fees", owner: 99, kind: GridFees, subject: 10},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Open(ctx, s.user(tt.owner), tt.kind, tt.subject, lessonDay, 7)
			if tt.wantErr == nil {
				s.NoError(err)
				return
			}
			s.ErrorIs(err, tt.wantErr)
		})
	}
}
