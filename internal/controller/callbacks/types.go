package callbacks

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_dashboard/internal/controller/state"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	userService *service.UserService,
	bookingService *service.BookingService,
	schedulingService *service.SchedulingService,
	gridService *service.GridService,
	stateManager *state.Manager,
	gridDays int,
	location *time.Location,
	logger *zap.Logger,
) *Handler {
	inner := &callbacktypes.Handler{
		UserService:       userService,
		BookingService:    bookingService,
		SchedulingService: schedulingService,
		GridService:       gridService,
		StateManager:      stateManager,
		Logger:            logger,
		GridDays:          gridDays,
		Location:          location,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	Route(ctx, b, update.CallbackQuery, h.Handler)
}
