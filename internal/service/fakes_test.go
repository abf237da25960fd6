package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/repository"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{users: make(map[int64]*model.User)}
	for _, u := range users {
		f.users[u.ID] = u
		if u.ID > f.nextID {
			f.nextID = u.ID
		}
	}
	return f
}

func (f *fakeUsers) Create(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.users[id], nil
}

func (f *fakeUsers) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.TelegramID == telegramID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) ListTeachers(ctx context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var teachers []*model.User
	for _, u := range f.users {
		if u.IsTeacher() && u.IsActive {
			teachers = append(teachers, u)
		}
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].ID < teachers[j].ID })
	return teachers, nil
}

func (f *fakeUsers) RestrictionPolicies(ctx context.Context, ids []int64) (map[int64]model.RestrictionPolicy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	policies := make(map[int64]model.RestrictionPolicy)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			policies[id] = u.RestrictionPolicy
		}
	}
	return policies, nil
}

func (f *fakeUsers) SetRestrictionPolicy(ctx context.Context, id int64, policy model.RestrictionPolicy) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[id].RestrictionPolicy = policy
	return nil
}

type fakeBookings struct {
	mu       sync.Mutex
	bookings []*model.Booking
	locks    []int64
}

func (f *fakeBookings) Create(ctx context.Context, booking *model.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking.ID = int64(len(f.bookings) + 1)
	stored := *booking
	f.bookings = append(f.bookings, &stored)
	return nil
}

func (f *fakeBookings) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.ID == id {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBookings) filter(keep func(b *model.Booking) bool) []model.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.Booking
	for _, b := range f.bookings {
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}

func (f *fakeBookings) ListActiveByDate(ctx context.Context, date model.Date) ([]model.Booking, error) {
	return f.filter(func(b *model.Booking) bool { return b.Date == date && b.Active() }), nil
}

func (f *fakeBookings) ListActiveByTeacher(ctx context.Context, teacherID int64, date model.Date) ([]model.Booking, error) {
	return f.filter(func(b *model.Booking) bool {
		return b.TeacherID == teacherID && b.Date == date && b.Active()
	}), nil
}

func (f *fakeBookings) ListByStudent(ctx context.Context, studentID int64, from model.Date) ([]model.Booking, error) {
	return f.filter(func(b *model.Booking) bool {
		return b.StudentID == studentID && !b.Date.Before(from)
	}), nil
}

func (f *fakeBookings) UpdateSchedule(ctx context.Context, id int64, date model.Date, interval model.Interval) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.ID == id {
			b.Date = date
			b.Interval = interval
		}
	}
	return nil
}

func (f *fakeBookings) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = status
		}
	}
	return nil
}

func (f *fakeBookings) CompletePast(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, b := range f.bookings {
		if b.Status == model.BookingStatusConfirmed && !b.EndsAt(now.Location()).After(now) {
			b.Status = model.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

func (f *fakeBookings) LockTeacher(ctx context.Context, teacherID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.locks = append(f.locks, teacherID)
	return nil
}

type flagsKey struct {
	id   int64
	date model.Date
}

type fakeAvailability struct {
	mu      sync.Mutex
	records map[flagsKey]model.SlotFlags
	err     error
	calls   int
}

func newFakeAvailability() *fakeAvailability {
	return &fakeAvailability{records: make(map[flagsKey]model.SlotFlags)}
}

func (f *fakeAvailability) put(id int64, date model.Date, flags model.SlotFlags) {
	f.records[flagsKey{id: id, date: date}] = flags
}

func (f *fakeAvailability) ListBySubjects(ctx context.Context, subjectIDs []int64, from, to model.Date) ([]model.AvailabilityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.AvailabilityRecord
	for _, id := range subjectIDs {
		for d := from; !to.Before(d); d = d.AddDays(1) {
			if flags, ok := f.records[flagsKey{id: id, date: d}]; ok {
				out = append(out, model.AvailabilityRecord{SubjectID: id, Date: d, Slots: flags})
			}
		}
	}
	return out, nil
}

func (f *fakeAvailability) UpsertBatch(ctx context.Context, records []model.AvailabilityRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return f.err
	}
	for _, r := range records {
		f.records[flagsKey{id: r.SubjectID, date: r.Date}] = r.Slots
	}
	return nil
}

type fakeFees struct {
	mu      sync.Mutex
	records map[flagsKey]model.SlotFlags
}

func newFakeFees() *fakeFees {
	return &fakeFees{records: make(map[flagsKey]model.SlotFlags)}
}

func (f *fakeFees) ListByStudents(ctx context.Context, studentIDs []int64, from, to model.Date) ([]model.FeeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.FeeRecord
	for _, id := range studentIDs {
		for d := from; !to.Before(d); d = d.AddDays(1) {
			if flags, ok := f.records[flagsKey{id: id, date: d}]; ok {
				out = append(out, model.FeeRecord{StudentID: id, Date: d, Slots: flags})
			}
		}
	}
	return out, nil
}

func (f *fakeFees) UpsertBatch(ctx context.Context, records []model.FeeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range records {
		f.records[flagsKey{id: r.StudentID, date: r.Date}] = r.Slots
	}
	return nil
}

// fakeTx выполняет fn на тех же фейковых репозиториях
type fakeTx struct {
	repos repository.Repositories
	calls int
}

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	f.calls++
	return fn(ctx, f.repos)
}

type fakeStore struct {
	users        *fakeUsers
	bookings     *fakeBookings
	availability *fakeAvailability
	fees         *fakeFees
	repos        repository.Repositories
	tx           *fakeTx
}

func newFakeStore(users ...*model.User) *fakeStore {
	s := &fakeStore{
		users:        newFakeUsers(users...),
		bookings:     &fakeBookings{},
		availability: newFakeAvailability(),
		fees:         newFakeFees(),
	}
	s.repos = repository.Repositories{
		Users:        s.users,
		Bookings:     s.bookings,
		Availability: s.availability,
		Fees:         s.fees,
	}
	s.tx = &fakeTx{repos: s.repos}
	return s
}

func teacher(id int64, policy model.RestrictionPolicy) *model.User {
	return &model.User{ID: id, TelegramID: 1000 + id, FirstName: "Teacher", Role: model.RoleTeacher, IsActive: true, RestrictionPolicy: policy}
}

func student(id int64) *model.User {
	return &model.User{ID: id, TelegramID: 1000 + id, FirstName: "Student", Role: model.RoleStudent, IsActive: true, RestrictionPolicy: model.RestrictionUnrestricted}
}

func admin(id int64) *model.User {
	return &model.User{ID: id, TelegramID: 1000 + id, FirstName: "Admin", Role: model.RoleAdmin, IsActive: true, RestrictionPolicy: model.RestrictionUnrestricted}
}
