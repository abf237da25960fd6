package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From

	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот расписания учебного центра.\n\n%s",
		registeredUser.DisplayName(),
		common.MainMenuText(registeredUser),
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/free ГГГГ-ММ-ДД ЧЧ:ММ-ЧЧ:ММ - кто из учителей свободен\n" +
		"/book ID ГГГГ-ММ-ДД ЧЧ:ММ-ЧЧ:ММ - записаться к учителю\n" +
		"/mybookings - мои занятия, отмена и перенос\n" +
		"/availability - отметить, в какие части дня вы свободны\n" +
		"/cancel - отменить текущий диалог\n\n" +
		"Для учителей и администраторов:\n" +
		"/fees ID - отметить оплаты студента\n\n" +
		"Для администраторов:\n" +
		"/availability ID - доступность пользователя\n" +
		"/policy ID checked|unrestricted - проверять ли доступность учителя при записи\n\n" +
		"Части дня: утро 06:00-12:00, день 12:00-19:00, вечер 19:00-24:00"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Команды обрабатываются другими handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
	case state.StateAwaitFreeQuery:
		h.handleFreeQuery(ctx, b, update, commandArgs(update.Message.Text))
	case state.StateAwaitReschedule:
		h.handleRescheduleInput(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
		h.stateManager.ClearState(telegramID)
	}
}

// HandleDefault отвечает на неизвестные команды
func (h *Handlers) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "❓ Неизвестная команда. Список команд: /help", nil)
}
