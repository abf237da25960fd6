package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/stretchr/testify/suite"
)

type resolverSuite struct {
	suite.Suite
	date model.Date
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, &resolverSuite{date: model.Date{Year: 2026, Month: time.October, Day: 20}})
}

func (s *resolverSuite) availability(records ...model.AvailabilityRecord) AvailabilityLookup {
	for i := range records {
		records[i].Date = s.date
	}
	return IndexAvailability(records)
}

func booking(id, teacherID int64, start, end int, status model.BookingStatus) model.Booking {
	return model.Booking{
		ID:        id,
		TeacherID: teacherID,
		Interval:  model.Interval{Start: start, End: end},
		Status:    status,
	}
}

func (s *resolverSuite) TestEndToEnd() {
	result, err := Resolve(Request{
		Target: model.Interval{Start: 600, End: 660},
		Bookings: []model.Booking{
			booking(1, 1, 570, 630, model.BookingStatusConfirmed),
		},
		Availability: s.availability(model.AvailabilityRecord{
			SubjectID: 2,
			Slots:     model.SlotFlags{Morning: false, Afternoon: true, Evening: true},
		}),
		Policy: PolicyIndex(map[int64]model.RestrictionPolicy{
			1: model.RestrictionChecked,
			2: model.RestrictionChecked,
			3: model.RestrictionUnrestricted,
		}),
		Subjects: []int64{1, 2, 3},
		Date:     s.date,
	})
	s.Require().NoError(err)

	s.True(result.IsBusy(1))
	s.False(result.IsUnavailable(1))

	s.True(result.IsUnavailable(2))
	s.False(result.IsBusy(2))

	s.True(result.IsEligible(3))
	s.Len(result.Busy, 1)
	s.Len(result.Unavailable, 1)
}

func (s *resolverSuite) TestBusy() {
	testCases := []struct {
		name     string
		bookings []model.Booking
		exclude  int64
		busy     bool
	}{
		{
			name:     "overlapping confirmed",
			bookings: []model.Booking{booking(1, 7, 630, 700, model.BookingStatusConfirmed)},
			busy:     true,
		},
		{
			name:     "overlapping pending",
			bookings: []model.Booking{booking(1, 7, 630, 700, model.BookingStatusPending)},
			busy:     true,
		},
		{
			name:     "overlapping completed",
			bookings: []model.Booking{booking(1, 7, 630, 700, model.BookingStatusCompleted)},
			busy:     true,
		},
		{
			name:     "cancelled never counts",
			bookings: []model.Booking{booking(1, 7, 600, 660, model.BookingStatusCancelled)},
		},
		{
			name:     "ends when target starts",
			bookings: []model.Booking{booking(1, 7, 540, 600, model.BookingStatusConfirmed)},
		},
		{
			name:     "starts when target ends",
			bookings: []model.Booking{booking(1, 7, 660, 720, model.BookingStatusConfirmed)},
		},
		{
			name:     "excluded booking is ignored",
			bookings: []model.Booking{booking(5, 7, 600, 660, model.BookingStatusConfirmed)},
			exclude:  5,
		},
		{
			name: "exclusion does not hide other bookings",
			bookings: []model.Booking{
				booking(5, 7, 600, 660, model.BookingStatusConfirmed),
				booking(6, 7, 650, 700, model.BookingStatusConfirmed),
			},
			exclude: 5,
			busy:    true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result, err := Resolve(Request{
				Target:           model.Interval{Start: 600, End: 660},
				Bookings:         tc.bookings,
				Subjects:         []int64{7},
				Date:             s.date,
				ExcludeBookingID: tc.exclude,
			})
			s.Require().NoError(err)
			s.Equal(tc.busy, result.IsBusy(7))
			s.False(result.IsUnavailable(7))
		})
	}
}

func (s *resolverSuite) TestUnavailable() {
	checked := PolicyIndex(map[int64]model.RestrictionPolicy{7: model.RestrictionChecked})

	testCases := []struct {
		name        string
		target      model.Interval
		policy      PolicyLookup
		records     []model.AvailabilityRecord
		unavailable bool
	}{
		{
			name:   "afternoon false dominates across noon",
			target: model.Interval{Start: 690, End: 780},
			policy: checked,
			records: []model.AvailabilityRecord{
				{SubjectID: 7, Slots: model.SlotFlags{Morning: true, Afternoon: false, Evening: true}},
			},
			unavailable: true,
		},
		{
			name:   "all touched slots available",
			target: model.Interval{Start: 690, End: 780},
			policy: checked,
			records: []model.AvailabilityRecord{
				{SubjectID: 7, Slots: model.SlotFlags{Morning: true, Afternoon: true, Evening: false}},
			},
		},
		{
			name:   "untouched slot ignored at boundary",
			target: model.Interval{Start: 660, End: 720},
			policy: checked,
			records: []model.AvailabilityRecord{
				{SubjectID: 7, Slots: model.SlotFlags{Morning: true, Afternoon: false}},
			},
		},
		{
			name:   "evening starts at 19:00",
			target: model.Interval{Start: 1140, End: 1200},
			policy: checked,
			records: []model.AvailabilityRecord{
				{SubjectID: 7, Slots: model.SlotFlags{Morning: true, Afternoon: true, Evening: false}},
			},
			unavailable: true,
		},
		{
			name:   "unrestricted bypasses records",
			target: model.Interval{Start: 600, End: 660},
			policy: PolicyIndex(map[int64]model.RestrictionPolicy{7: model.RestrictionUnrestricted}),
			records: []model.AvailabilityRecord{
				{SubjectID: 7},
			},
		},
		{
			name:   "missing policy is unrestricted",
			target: model.Interval{Start: 600, End: 660},
			policy: PolicyIndex(nil),
			records: []model.AvailabilityRecord{
				{SubjectID: 7},
			},
		},
		{
			name:   "missing record is available",
			target: model.Interval{Start: 600, End: 660},
			policy: checked,
			records: []model.AvailabilityRecord{
				{SubjectID: 8},
			},
		},
		{
			name:   "nil policy lookup",
			target: model.Interval{Start: 600, End: 660},
			records: []model.AvailabilityRecord{
				{SubjectID: 7},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			result, err := Resolve(Request{
				Target:       tc.target,
				Availability: s.availability(tc.records...),
				Policy:       tc.policy,
				Subjects:     []int64{7},
				Date:         s.date,
			})
			s.Require().NoError(err)
			s.Equal(tc.unavailable, result.IsUnavailable(7))
		})
	}
}

func (s *resolverSuite) TestRecordForOtherDateIgnored() {
	lookup := IndexAvailability([]model.AvailabilityRecord{
		{SubjectID: 7, Date: s.date.AddDays(1)},
	})

	result, err := Resolve(Request{
		Target:       model.Interval{Start: 600, End: 660},
		Availability: lookup,
		Policy:       PolicyIndex(map[int64]model.RestrictionPolicy{7: model.RestrictionChecked}),
		Subjects:     []int64{7},
		Date:         s.date,
	})
	s.Require().NoError(err)
	s.False(result.IsUnavailable(7))
}

func (s *resolverSuite) TestBusyAndUnavailableTogether() {
	result, err := Resolve(Request{
		Target:   model.Interval{Start: 600, End: 660},
		Bookings: []model.Booking{booking(1, 7, 600, 660, model.BookingStatusConfirmed)},
		Availability: s.availability(model.AvailabilityRecord{
			SubjectID: 7,
			Slots:     model.SlotFlags{Afternoon: true},
		}),
		Policy:   PolicyIndex(map[int64]model.RestrictionPolicy{7: model.RestrictionChecked}),
		Subjects: []int64{7},
		Date:     s.date,
	})
	s.Require().NoError(err)
	s.True(result.IsBusy(7))
	s.True(result.IsUnavailable(7))
	s.False(result.IsEligible(7))
}

func (s *resolverSuite) TestEmptyInputs() {
	result, err := Resolve(Request{Target: model.Interval{Start: 600, End: 660}})
	s.Require().NoError(err)
	s.Empty(result.Busy)
	s.Empty(result.Unavailable)
}

func (s *resolverSuite) TestInvalidInterval() {
	for _, target := range []model.Interval{{Start: 600, End: 600}, {Start: 660, End: 600}} {
		_, err := Resolve(Request{Target: target, Subjects: []int64{1}})

		var invalid *model.InvalidIntervalError
		s.Require().True(errors.As(err, &invalid))
		s.Equal(target, invalid.Interval)
	}
}

func (s *resolverSuite) TestDeterministic() {
	req := Request{
		Target: model.Interval{Start: 700, End: 800},
		Bookings: []model.Booking{
			booking(1, 1, 650, 710, model.BookingStatusConfirmed),
			booking(2, 2, 800, 900, model.BookingStatusConfirmed),
		},
		Availability: s.availability(model.AvailabilityRecord{SubjectID: 3, Slots: model.SlotFlags{Morning: true}}),
		Policy:       PolicyIndex(map[int64]model.RestrictionPolicy{3: model.RestrictionChecked}),
		Subjects:     []int64{1, 2, 3},
		Date:         s.date,
	}

	first, err := Resolve(req)
	s.Require().NoError(err)
	second, err := Resolve(req)
	s.Require().NoError(err)
	s.Equal(first, second)
}
