package common

import (
	"context"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// MainMenuText текст главного меню с командами по роли пользователя
func MainMenuText(user *model.User) string {
	text := "📋 Главное меню\n\n" +
		"Доступные команды:\n" +
		"/free - Свободные учителя на дату и время\n" +
		"/book - Записаться на занятие\n" +
		"/mybookings - Мои занятия\n" +
		"/availability - Моя доступность по дням\n" +
		"/help - Справка\n"

	switch user.Role {
	case model.RoleTeacher:
		text += "\nКоманды учителя:\n" +
			"/fees - Оплаты студента по дням"
	case model.RoleAdmin:
		text += "\nКоманды администратора:\n" +
			"/availability <id> - Доступность пользователя\n" +
			"/fees - Оплаты студента по дням\n" +
			"/policy - Проверка доступности учителя"
	}

	return text
}

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		hc.ClearState()
		hc.Answer("")

		if err := hc.EditMessage(MainMenuText(hc.User), nil); err != nil {
			h.Logger.Error("Failed to show main menu", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		}
	})
}
