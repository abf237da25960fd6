package staging

import (
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
)

// Key ячейка сетки: пользователь и дата
type Key struct {
	SubjectID int64
	Date      model.Date
}

// Baseline последнее подтверждённое хранилищем значение ячейки
type Baseline struct {
	model.SlotFlags
}

// Effective значение ячейки с учётом несохранённых правок
type Effective struct {
	model.SlotFlags
}

// OverlayEntry несохранённая правка. nil-поле означает "не менялось".
type OverlayEntry struct {
	Morning   *bool
	Afternoon *bool
	Evening   *bool
}

// Merge накладывает правку на базовое значение по каждому полю
func (e OverlayEntry) Merge(base Baseline) Effective {
	flags := base.SlotFlags
	if e.Morning != nil {
		flags.Morning = *e.Morning
	}
	if e.Afternoon != nil {
		flags.Afternoon = *e.Afternoon
	}
	if e.Evening != nil {
		flags.Evening = *e.Evening
	}
	return Effective{SlotFlags: flags}
}

// fullEntry строит правку со всеми тремя полями
func fullEntry(flags model.SlotFlags) OverlayEntry {
	morning, afternoon, evening := flags.Morning, flags.Afternoon, flags.Evening
	return OverlayEntry{Morning: &morning, Afternoon: &afternoon, Evening: &evening}
}

// Update полная строка для сохранения
type Update struct {
	SubjectID int64
	Date      model.Date
	Slots     model.SlotFlags
}

// Key возвращает ключ ячейки обновления
func (u Update) Key() Key {
	return Key{SubjectID: u.SubjectID, Date: u.Date}
}

// CommitResult итог успешного сохранения
type CommitResult struct {
	Updates []Update
}

// Count количество сохранённых ячеек
func (r CommitResult) Count() int {
	return len(r.Updates)
}
