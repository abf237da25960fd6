package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/state"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const lessonFormatHint = "Формат: <code>ГГГГ-ММ-ДД ЧЧ:ММ-ЧЧ:ММ</code>, например <code>2026-10-20 10:00-11:30</code>"

// HandleFree обрабатывает команду /free - кто из учителей свободен на интервал
func (h *Handlers) HandleFree(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) == 0 {
		h.stateManager.SetState(update.Message.From.ID, state.StateAwaitFreeQuery)
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"🔎 На какую дату и время ищем учителя?\n\n"+lessonFormatHint+"\n\nДля отмены отправьте /cancel", nil)
		return
	}

	h.handleFreeQuery(ctx, b, update, args)
}

func (h *Handlers) handleFreeQuery(ctx context.Context, b *bot.Bot, update *models.Update, args []string) {
	chatID := update.Message.Chat.ID

	date, interval, err := parseLessonArgs(args)
	if err != nil {
		h.sendLessonParseError(ctx, b, chatID, err)
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)

	result, err := h.schedulingService.CheckTeachers(ctx, date, interval, 0)
	if err != nil {
		h.logger.Error("Failed to check teachers", zap.Error(err))
		h.sendServiceError(ctx, b, chatID, err, "check_teachers")
		return
	}

	text, kb := renderFreeTeachers(date, interval, result)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// renderFreeTeachers список учителей с кнопками записи к свободным
func renderFreeTeachers(date model.Date, interval model.Interval, result []service.TeacherEligibility) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔎 <b>%s</b>\n\n", formatting.FormatLesson(date, interval)))

	if len(result) == 0 {
		sb.WriteString("😔 Учителей пока нет.")
		return sb.String(), nil
	}

	kb := keyboard.NewBuilder()
	free := 0
	for _, r := range result {
		mark := "🟢"
		note := ""
		switch {
		case r.Busy && r.Unavailable:
			mark, note = "🔴", " - занят, недоступен"
		case r.Busy:
			mark, note = "🔴", " - занят"
		case r.Unavailable:
			mark, note = "🟡", " - недоступен"
		default:
			free++
			req := common.LessonRequest{TeacherID: r.Teacher.ID, Date: date, Interval: interval}
			kb.Row(keyboard.Button("📝 Записаться: "+r.Teacher.DisplayName(), common.BookData(req)))
		}
		sb.WriteString(fmt.Sprintf("%s %s (ID %d)%s\n", mark, r.Teacher.DisplayName(), r.Teacher.ID, note))
	}

	sb.WriteString(fmt.Sprintf("\nСвободно: %d %s", free, formatting.PluralizeTeachers(free)))

	if kb.Len() == 0 {
		return sb.String(), nil
	}
	return sb.String(), kb.Build()
}

// HandleBook обрабатывает команду /book ID ГГГГ-ММ-ДД ЧЧ:ММ-ЧЧ:ММ
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)
	if len(args) != 3 {
		h.sendMessage(ctx, b, chatID, "❌ Использование: /book ID_учителя ГГГГ-ММ-ДД ЧЧ:ММ-ЧЧ:ММ\n\nСвободных учителей покажет /free", nil)
		return
	}

	teacherID, err := parseID(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Неверный ID учителя")
		return
	}

	date, interval, err := parseLesson(args[1], args[2])
	if err != nil {
		h.sendLessonParseError(ctx, b, chatID, err)
		return
	}

	created, err := h.bookingService.BookLesson(ctx, user, teacherID, date, interval)
	if err != nil {
		h.sendServiceError(ctx, b, chatID, err, "book_lesson")
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Вы записаны: %s\nЗапись #%d. Все занятия: /mybookings",
		formatting.FormatLesson(created.Date, created.Interval),
		created.ID,
	), nil)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	var (
		bookings []model.Booking
		err      error
	)
	if user.IsTeacher() {
		bookings, err = h.bookingService.GetTeacherBookings(ctx, user.ID, h.gridDays)
	} else {
		bookings, err = h.bookingService.GetStudentBookings(ctx, user.ID)
	}
	if err != nil {
		h.logger.Error("Failed to get bookings", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось загрузить занятия. Попробуйте позже.")
		return
	}

	if len(bookings) == 0 {
		h.sendMessage(ctx, b, chatID, "📭 Предстоящих занятий нет.\n\nНайти учителя: /free", nil)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 <b>Ваши занятия</b> (%d %s)\n\n", len(bookings), formatting.PluralizeBookings(len(bookings))))

	kb := keyboard.NewBuilder()
	for _, bk := range bookings {
		display := formatting.GetBookingStatusDisplay(bk.Status)
		line := fmt.Sprintf("%s #%d %s", display.Emoji, bk.ID, formatting.FormatLesson(bk.Date, bk.Interval))
		if user.IsTeacher() {
			line += fmt.Sprintf(", студент ID %d", bk.StudentID)
		} else {
			line += fmt.Sprintf(", учитель ID %d", bk.TeacherID)
		}
		sb.WriteString(line + "\n")

		if bk.Status == model.BookingStatusPending || bk.Status == model.BookingStatusConfirmed {
			kb.Row(
				keyboard.Button(fmt.Sprintf("🔁 Перенести #%d", bk.ID), fmt.Sprintf("%s%d", booking.Reschedule, bk.ID)),
				keyboard.Button(fmt.Sprintf("❌ Отменить #%d", bk.ID), fmt.Sprintf("%s%d", booking.CancelBooking, bk.ID)),
			)
		}
	}

	var markup *models.InlineKeyboardMarkup
	if kb.Len() > 0 {
		markup = kb.Build()
	}
	h.sendMessage(ctx, b, chatID, sb.String(), markup)
}

// handleRescheduleInput принимает новую дату и время переносимого занятия
func (h *Handlers) handleRescheduleInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	bookingID, ok := h.stateManager.GetInt64(telegramID, state.DataBookingID)
	if !ok {
		h.logger.Error("Missing booking id for reschedule", zap.Int64("telegram_id", telegramID))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Ошибка: данные не найдены. Начните заново через /mybookings")
		return
	}

	date, interval, err := parseLessonArgs(commandArgs(update.Message.Text))
	if err != nil {
		h.sendLessonParseError(ctx, b, chatID, err)
		return
	}

	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		h.stateManager.ClearState(telegramID)
		return
	}

	moved, err := h.bookingService.Reschedule(ctx, user, bookingID, date, interval)
	if err != nil {
		// Занятость и доступность - повод выбрать другое время, диалог не закрываем
		if errors.Is(err, service.ErrTeacherBusy) || errors.Is(err, service.ErrTeacherUnavailable) || errors.Is(err, service.ErrBookingInPast) {
			h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\nВведите другое время или /cancel", nil)
			return
		}
		h.stateManager.ClearState(telegramID)
		h.sendServiceError(ctx, b, chatID, err, "reschedule")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"✅ Запись #%d перенесена на %s",
		moved.ID,
		formatting.FormatLesson(moved.Date, moved.Interval),
	), nil)
}

func (h *Handlers) sendLessonParseError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	var invalid *model.InvalidIntervalError
	if errors.As(err, &invalid) {
		h.sendMessage(ctx, b, chatID, common.ErrorMessage(err), nil)
		return
	}
	h.sendMessage(ctx, b, chatID, "❌ Не удалось разобрать дату и время.\n\n"+lessonFormatHint, nil)
}
