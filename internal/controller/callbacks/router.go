package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/gridview"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/grid"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Common callbacks
const (
	BackToMain = "back_to_main"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	// ===== Common Navigation =====
	case data == BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Availability and fee grids =====
	case strings.HasPrefix(data, gridview.Prefix):
		grid.HandleGrid(ctx, b, callback, h)

	// ===== Bookings =====
	case strings.HasPrefix(data, common.BookPrefix):
		booking.HandleBook(ctx, b, callback, h)
	case strings.HasPrefix(data, booking.CancelBooking):
		booking.HandleCancelBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, booking.ConfirmCancel):
		booking.HandleConfirmCancel(ctx, b, callback, h)
	case data == booking.KeepBooking:
		booking.HandleKeepBooking(ctx, b, callback, h)
	case strings.HasPrefix(data, booking.Reschedule):
		booking.HandleReschedule(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
