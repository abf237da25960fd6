package common

import (
	"errors"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/Freeeeeet/tutor_dashboard/internal/staging"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var invalidInterval *model.InvalidIntervalError

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrNotATeacher):
		return "❌ Эта функция доступна только учителям"
	case errors.Is(err, service.ErrForbidden):
		return "❌ Недостаточно прав"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Бронирование не найдено"
	case errors.Is(err, service.ErrBookingNotActive):
		return "❌ Занятие уже отменено или проведено"
	case errors.Is(err, service.ErrBookingInPast):
		return "❌ Нельзя записаться на прошедшее время"
	case errors.Is(err, service.ErrTeacherBusy):
		return "❌ У учителя уже есть занятие в это время"
	case errors.Is(err, service.ErrTeacherUnavailable):
		return "❌ Учитель недоступен в это время"
	case errors.Is(err, service.ErrGridNotOpen):
		return "❌ Сетка закрыта, откройте её заново"
	case errors.Is(err, service.ErrDateOutsideGrid):
		return "❌ Дата вне открытой сетки"
	case errors.Is(err, service.ErrUnsavedChanges):
		return "⚠️ Есть несохранённые изменения. Сохраните или отмените их"
	case errors.Is(err, staging.ErrUnknownSlot):
		return "❌ Неизвестный отрезок дня"
	case errors.As(err, &invalidInterval):
		return "❌ Конец занятия должен быть позже начала"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Произошла ошибка"
	}
}
