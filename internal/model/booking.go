package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCompleted BookingStatus = "completed" // Проведено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено, в конфликтах не участвует
)

// Valid проверяет, что статус известен
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID        int64         `json:"id"`
	TeacherID int64         `json:"teacher_id"`
	StudentID int64         `json:"student_id"`
	Date      Date          `json:"date"`
	Interval  Interval      `json:"interval"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Active сообщает, участвует ли бронирование в проверке конфликтов
func (b Booking) Active() bool {
	return b.Status != BookingStatusCancelled
}

// EndsAt возвращает момент окончания занятия в указанном часовом поясе
func (b Booking) EndsAt(loc *time.Location) time.Time {
	return time.Date(b.Date.Year, b.Date.Month, b.Date.Day, 0, b.Interval.End, 0, 0, loc)
}
