package booking

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data бронирований
const (
	CancelBooking = "cancel_booking:" // cancel_booking:booking_id
	ConfirmCancel = "confirm_cancel:" // confirm_cancel:booking_id
	Reschedule    = "reschedule:"     // reschedule:booking_id
	KeepBooking   = "keep_booking"
)

// HandleBook записывает студента к учителю из списка свободных
func HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		req, err := common.ParseBookData(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_book")
			return
		}

		booking, err := h.BookingService.BookLesson(ctx, hc.User, req.TeacherID, req.Date, req.Interval)
		if err != nil {
			common.HandleError(hc, err, "book_lesson")
			return
		}

		teacherName := fmt.Sprintf("#%d", req.TeacherID)
		if teacher, err := h.UserService.GetByID(ctx, req.TeacherID); err == nil && teacher != nil {
			teacherName = teacher.DisplayName()
		}

		hc.Answer("✅ Записано")

		text := fmt.Sprintf(
			"✅ <b>Вы записаны на занятие</b>\n\n"+
				"👨‍🏫 Учитель: %s\n"+
				"📅 %s\n"+
				"⏱ %s\n\n"+
				"Запись #%d. Все занятия: /mybookings",
			teacherName,
			formatting.FormatLesson(booking.Date, booking.Interval),
			formatting.FormatDuration(booking.Interval.Duration()),
			booking.ID,
		)
		if err := hc.EditMessage(text, nil); err != nil {
			h.Logger.Error("Failed to edit message", zap.Error(err))
		}
	})
}

// HandleCancelBooking спрашивает подтверждение отмены
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_cancel_booking")
			return
		}

		hc.Answer("")

		kb := keyboard.NewBuilder().
			AddRows(keyboard.YesNoButtons(fmt.Sprintf("%s%d", ConfirmCancel, bookingID), KeepBooking)).
			Build()

		if err := hc.EditMessage(fmt.Sprintf("❓ Отменить запись #%d?", bookingID), kb); err != nil {
			h.Logger.Error("Failed to edit message", zap.Error(err))
		}
	})
}

// HandleConfirmCancel отменяет бронирование
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_confirm_cancel")
			return
		}

		if err := h.BookingService.CancelBooking(ctx, hc.User, bookingID); err != nil {
			common.HandleError(hc, err, "cancel_booking")
			return
		}

		hc.Answer("✅ Запись отменена")
		if err := hc.EditMessage(fmt.Sprintf("❌ Запись #%d отменена.\n\nВсе занятия: /mybookings", bookingID), nil); err != nil {
			h.Logger.Error("Failed to edit message", zap.Error(err))
		}
	})
}

// HandleKeepBooking закрывает вопрос об отмене
func HandleKeepBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Answer("")
		if err := hc.EditMessage("👌 Запись сохранена.\n\nВсе занятия: /mybookings", nil); err != nil {
			h.Logger.Error("Failed to edit message", zap.Error(err))
		}
	})
}

// HandleReschedule просит ввести новую дату и время занятия
func HandleReschedule(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_reschedule")
			return
		}

		hc.SetState(state.StateAwaitReschedule)
		hc.SetData(state.DataBookingID, bookingID)
		hc.Answer("")

		text := fmt.Sprintf(
			"🔁 Перенос записи #%d\n\n"+
				"Отправьте новую дату и время в формате:\n"+
				"<code>ГГГГ-ММ-ДД ЧЧ:ММ-ЧЧ:ММ</code>\n\n"+
				"Для отмены отправьте /cancel",
			bookingID,
		)
		if err := hc.SendMessage(text, nil); err != nil {
			h.Logger.Error("Failed to send message", zap.Error(err))
		}
	})
}
