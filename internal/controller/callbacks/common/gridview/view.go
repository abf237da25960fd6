package gridview

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/go-telegram/bot/models"
)

// Options параметры отрисовки сетки
type Options struct {
	// Title заголовок, например имя владельца сетки
	Title string

	// ConfirmDiscard показывает подтверждение отмены правок вместо кнопок сохранения
	ConfirmDiscard bool
}

func titleFor(kind service.GridKind) string {
	switch kind {
	case service.GridTeacherAvailability:
		return "🗓 Доступность учителя"
	case service.GridStudentAvailability:
		return "🗓 Доступность студента"
	case service.GridFees:
		return "💰 Оплаты"
	}
	return "🗓 Сетка"
}

// cellText текст кнопки ячейки: значение и отметка изменения
func cellText(kind service.GridKind, slot model.TimeSlot, value, changed bool) string {
	mark := "❌"
	if kind == service.GridFees {
		mark = "▫️"
		if value {
			mark = "💰"
		}
	} else if value {
		mark = "✅"
	}

	text := formatting.GetSlotName(slot) + " " + mark
	if changed {
		text = "✏️ " + text
	}
	return text
}

// Render формирует текст и клавиатуру сетки
func Render(grid *service.Grid, opts Options) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder

	sb.WriteString("<b>" + titleFor(grid.Kind) + "</b>")
	if opts.Title != "" {
		sb.WriteString(": " + opts.Title)
	}
	sb.WriteString("\n")

	last := grid.From.AddDays(grid.Days - 1)
	sb.WriteString(fmt.Sprintf("📅 %s - %s\n\n", formatting.FormatDate(grid.From), formatting.FormatDate(last)))

	for _, slot := range model.AllSlots() {
		iv, _ := slot.Range()
		sb.WriteString(fmt.Sprintf("%s: %s\n", formatting.GetSlotName(slot), iv.String()))
	}

	changes := grid.ChangeCount()
	if changes > 0 {
		sb.WriteString(fmt.Sprintf("\n✏️ Не сохранено: %d %s", changes, formatting.PluralizeDays(changes)))
	}

	kb := keyboard.NewBuilder()
	for _, date := range grid.Dates() {
		eff := grid.Effective(date)

		kb.Row(keyboard.Label(formatting.FormatDateWithWeekday(date)))

		row := make([]models.InlineKeyboardButton, 0, len(model.AllSlots()))
		for _, slot := range model.AllSlots() {
			text := cellText(grid.Kind, slot, eff.Get(slot), grid.IsFieldChanged(date, slot))
			row = append(row, keyboard.Button(text, toggleData(grid.Kind, date, slot)))
		}
		kb.Row(row...)
	}

	switch {
	case opts.ConfirmDiscard && changes > 0:
		sb.WriteString(fmt.Sprintf("\n\n⚠️ Отменить изменения (%d %s)?", changes, formatting.PluralizeDays(changes)))
		kb.AddRows(keyboard.YesNoButtons(
			actionData(grid.Kind, ActionDiscardConfirm),
			actionData(grid.Kind, ActionDiscardCancel),
		))
	case grid.IsCommitting():
		kb.Row(keyboard.Label("⏳ Сохранение..."))
	case changes > 0:
		kb.Row(
			keyboard.Button(fmt.Sprintf("💾 Сохранить (%d)", changes), actionData(grid.Kind, ActionSave)),
			keyboard.Button("↩️ Отменить", actionData(grid.Kind, ActionDiscard)),
		)
	}

	kb.Row(keyboard.Button("✖️ Закрыть", actionData(grid.Kind, ActionClose)))

	return sb.String(), kb.Build()
}
