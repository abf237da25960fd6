// Package scheduling определяет, какие учителя заняты или недоступны
// в заданный интервал. Работает только с подтверждёнными в хранилище данными.
package scheduling

import (
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// AvailabilityLookup возвращает запись доступности пользователя на дату
type AvailabilityLookup func(subjectID int64, date model.Date) (model.AvailabilityRecord, bool)

// PolicyLookup возвращает политику ограничений пользователя
type PolicyLookup func(subjectID int64) model.RestrictionPolicy

// Request входные данные для Resolve
type Request struct {
	Target       model.Interval
	Bookings     []model.Booking
	Availability AvailabilityLookup
	Policy       PolicyLookup
	Subjects     []int64
	Date         model.Date

	// ExcludeBookingID исключает бронирование из проверки (0 - не исключать).
	// Нужен при переносе занятия, чтобы оно не конфликтовало само с собой.
	ExcludeBookingID int64
}

// Result множества занятых и недоступных учителей
type Result struct {
	Busy        map[int64]struct{}
	Unavailable map[int64]struct{}
}

// IsBusy сообщает, есть ли у учителя пересекающееся бронирование
func (r Result) IsBusy(id int64) bool {
	_, ok := r.Busy[id]
	return ok
}

// IsUnavailable сообщает, исключает ли заявленная доступность интервал
func (r Result) IsUnavailable(id int64) bool {
	_, ok := r.Unavailable[id]
	return ok
}

// IsEligible учитель не занят и доступен
func (r Result) IsEligible(id int64) bool {
	return !r.IsBusy(id) && !r.IsUnavailable(id)
}

// Resolve классифицирует учителей для целевого интервала.
// Единственная ошибка - *model.InvalidIntervalError для пустого интервала.
func Resolve(req Request) (Result, error) {
	if err := req.Target.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{
		Busy:        make(map[int64]struct{}),
		Unavailable: make(map[int64]struct{}),
	}

	for _, booking := range req.Bookings {
		if !booking.Active() {
			continue
		}
		if req.ExcludeBookingID != 0 && booking.ID == req.ExcludeBookingID {
			continue
		}
		if model.Overlaps(booking.Interval, req.Target) {
			result.Busy[booking.TeacherID] = struct{}{}
		}
	}

	touched := model.TouchedSlots(req.Target)
	for _, subjectID := range req.Subjects {
		if isUnavailable(req, subjectID, touched) {
			result.Unavailable[subjectID] = struct{}{}
		}
	}

	return result, nil
}

func isUnavailable(req Request, subjectID int64, touched []model.TimeSlot) bool {
	// Без политики или без записи считаем доступным
	if req.Policy == nil || req.Policy(subjectID) != model.RestrictionChecked {
		return false
	}
	if req.Availability == nil {
		return false
	}

	record, ok := req.Availability(subjectID, req.Date)
	if !ok {
		return false
	}

	for _, slot := range touched {
		if !record.Slots.Get(slot) {
			return true
		}
	}
	return false
}
