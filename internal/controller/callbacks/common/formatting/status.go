package formatting

import "github.com/Freeeeeet/tutor_dashboard/internal/model"

// BookingStatusDisplay представляет отображение статуса бронирования
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса бронирования
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	displays := map[model.BookingStatus]BookingStatusDisplay{
		model.BookingStatusPending:   {"⏳", "Ожидает подтверждения"},
		model.BookingStatusConfirmed: {"✅", "Подтверждено"},
		model.BookingStatusCompleted: {"✔️", "Проведено"},
		model.BookingStatusCancelled: {"❌", "Отменено"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return BookingStatusDisplay{"❓", "Неизвестно"}
}

// GetPolicyDisplay описание политики проверки доступности учителя
func GetPolicyDisplay(policy model.RestrictionPolicy) string {
	if policy == model.RestrictionChecked {
		return "🔒 с проверкой доступности"
	}
	return "🔓 без ограничений"
}
