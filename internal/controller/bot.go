package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/handlers"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/state"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

// Services сервисы, которые использует бот
type Services struct {
	Users      *service.UserService
	Bookings   *service.BookingService
	Scheduling *service.SchedulingService
	Grids      *service.GridService
}

func NewBotController(
	botInstance *bot.Bot,
	services Services,
	gridDays int,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		services.Users,
		services.Bookings,
		services.Scheduling,
		services.Grids,
		stateManager,
		gridDays,
		location,
		logger,
	)

	callbackHandler := callbacks.NewHandler(
		services.Users,
		services.Bookings,
		services.Scheduling,
		services.Grids,
		stateManager,
		gridDays,
		location,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// DefaultHandler обработчик сообщений, не подошедших ни под одну команду
func (c *BotController) DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	c.handlers.HandleDefault(ctx, b, update)
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)

	// Команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/free", bot.MatchTypePrefix, c.handlers.HandleFree)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/book", bot.MatchTypePrefix, c.handlers.HandleBook)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypePrefix, c.handlers.HandleAvailability)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/fees", bot.MatchTypePrefix, c.handlers.HandleFees)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/policy", bot.MatchTypePrefix, c.handlers.HandlePolicy)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "free", Description: "🔎 Свободные учителя"},
		{Command: "book", Description: "📝 Записаться на занятие"},
		{Command: "mybookings", Description: "📅 Мои занятия"},
		{Command: "availability", Description: "🗓 Моя доступность"},
		{Command: "fees", Description: "💰 Оплаты студента"},
		{Command: "cancel", Description: "✖️ Отменить диалог"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает бота и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
}
