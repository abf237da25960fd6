package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/state"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService       *service.UserService
	BookingService    *service.BookingService
	SchedulingService *service.SchedulingService
	GridService       *service.GridService
	StateManager      *state.Manager
	Logger            *zap.Logger

	// GridDays количество дней в сетке
	GridDays int
	Location *time.Location
}
