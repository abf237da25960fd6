package model

import "time"

// AvailabilityRecord заявленное свободное время пользователя на дату.
// Отсутствие записи означает отсутствие ограничений.
type AvailabilityRecord struct {
	SubjectID int64     `json:"subject_id"`
	Date      Date      `json:"date"`
	Slots     SlotFlags `json:"slots"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeeRecord отметки об оплате занятий ученика по отрезкам дня
type FeeRecord struct {
	StudentID int64     `json:"student_id"`
	Date      Date      `json:"date"`
	Slots     SlotFlags `json:"slots"`
	UpdatedAt time.Time `json:"updated_at"`
}
