package grid

import (
	"context"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/gridview"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleGrid обрабатывает нажатия в сетке доступности или оплат
func HandleGrid(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		cb, err := gridview.Parse(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "parse_grid_callback")
			return
		}

		grid, err := h.GridService.Get(hc.User.ID, cb.Kind)
		if err != nil {
			common.HandleError(hc, err, "get_grid")
			return
		}

		switch cb.Action {
		case gridview.ActionToggle:
			if _, err := h.GridService.Toggle(hc.User.ID, cb.Kind, cb.Date, cb.Slot); err != nil {
				common.HandleError(hc, err, "toggle_grid")
				return
			}
			hc.Answer("")
			redraw(hc, grid, false)

		case gridview.ActionSave:
			handleSave(hc, grid)

		case gridview.ActionDiscard:
			hc.Answer("")
			redraw(hc, grid, true)

		case gridview.ActionDiscardConfirm:
			if err := h.GridService.Discard(hc.User.ID, cb.Kind); err != nil {
				common.HandleError(hc, err, "discard_grid")
				return
			}
			hc.Answer("↩️ Изменения отменены")
			redraw(hc, grid, false)

		case gridview.ActionDiscardCancel:
			hc.Answer("")
			redraw(hc, grid, false)

		case gridview.ActionClose:
			if grid.ChangeCount() > 0 {
				hc.AnswerAlert(common.ErrorMessage(service.ErrUnsavedChanges))
				return
			}
			h.GridService.Close(hc.User.ID, cb.Kind)
			hc.Answer("")
			if err := hc.EditMessage(common.MainMenuText(hc.User), nil); err != nil {
				h.Logger.Error("Failed to close grid", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
			}
		}
	})
}

func handleSave(hc *common.HandlerContext, grid *service.Grid) {
	if grid.IsCommitting() {
		hc.Answer("⏳ Сохранение уже идёт")
		return
	}

	if grid.ChangeCount() == 0 {
		hc.Answer("Нет изменений")
		return
	}

	hc.Answer("⏳ Сохраняю...")

	result, err := hc.Handler.GridService.Save(hc.Ctx, hc.User.ID, grid.Kind)
	if err != nil {
		// Правки остаются в сетке, пользователь может нажать "Сохранить" ещё раз
		hc.Handler.Logger.Error("Failed to save grid",
			zap.Int64("user_id", hc.User.ID),
			zap.String("kind", string(grid.Kind)),
			zap.Error(err))
		redraw(hc, grid, false)
		if sendErr := hc.SendMessage("❌ Не удалось сохранить изменения. Попробуйте ещё раз.", nil); sendErr != nil {
			hc.Handler.Logger.Error("Failed to send message", zap.Error(sendErr))
		}
		return
	}

	hc.Handler.Logger.Info("Grid saved from bot",
		zap.Int64("user_id", hc.User.ID),
		zap.String("kind", string(grid.Kind)),
		zap.Int("updates", result.Count()))

	redraw(hc, grid, false)
}

func redraw(hc *common.HandlerContext, grid *service.Grid, confirmDiscard bool) {
	text, kb := gridview.Render(grid, gridview.Options{Title: title(hc, grid), ConfirmDiscard: confirmDiscard})
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to redraw grid",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
	}
}

// title имя владельца строк сетки, если это не сам пользователь
func title(hc *common.HandlerContext, grid *service.Grid) string {
	if grid.SubjectID == hc.User.ID {
		return ""
	}

	subject, err := hc.Handler.UserService.GetByID(hc.Ctx, grid.SubjectID)
	if err != nil || subject == nil {
		return ""
	}
	return subject.DisplayName()
}
