package formatting

import (
	"fmt"

	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// FormatDate форматирует дату
func FormatDate(d model.Date) string {
	return d.Time().Format("02.01.2006")
}

// FormatDateShort форматирует дату без года
func FormatDateShort(d model.Date) string {
	return d.Time().Format("02.01")
}

// FormatDateWithWeekday форматирует дату с кратким днём недели
func FormatDateWithWeekday(d model.Date) string {
	return fmt.Sprintf("%s %s", GetWeekdayShortName(int(d.Time().Weekday())), FormatDateShort(d))
}

// FormatLesson форматирует дату и время занятия
func FormatLesson(d model.Date, iv model.Interval) string {
	return fmt.Sprintf("%s %s", FormatDate(d), iv.String())
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}

// GetSlotName возвращает название отрезка дня
func GetSlotName(slot model.TimeSlot) string {
	switch slot {
	case model.SlotMorning:
		return "Утро"
	case model.SlotAfternoon:
		return "День"
	case model.SlotEvening:
		return "Вечер"
	}
	return "?"
}
