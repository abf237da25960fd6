package handlers

import (
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/state"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService       *service.UserService
	bookingService    *service.BookingService
	schedulingService *service.SchedulingService
	gridService       *service.GridService
	stateManager      *state.Manager
	gridDays          int
	location          *time.Location
	clock             func() time.Time
	logger            *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	bookingService *service.BookingService,
	schedulingService *service.SchedulingService,
	gridService *service.GridService,
	stateManager *state.Manager,
	gridDays int,
	location *time.Location,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:       userService,
		bookingService:    bookingService,
		schedulingService: schedulingService,
		gridService:       gridService,
		stateManager:      stateManager,
		gridDays:          gridDays,
		location:          location,
		clock:             time.Now,
		logger:            logger,
	}
}
