package handlers

import (
	"context"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/gridview"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/Freeeeeet/tutor_dashboard/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleAvailability обрабатывает команду /availability.
// Учитель и студент открывают свою сетку, администратор - сетку пользователя по ID.
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)

	subject := user
	if len(args) > 0 {
		if !user.IsAdmin() {
			h.sendServiceError(ctx, b, chatID, service.ErrForbidden, "open_availability")
			return
		}

		subjectID, err := parseID(args[0])
		if err != nil {
			h.sendError(ctx, b, chatID, "❌ Использование: /availability ID")
			return
		}

		subject, err = h.userService.GetByID(ctx, subjectID)
		if err != nil || subject == nil {
			h.sendServiceError(ctx, b, chatID, service.ErrUserNotFound, "open_availability")
			return
		}
	}

	var kind service.GridKind
	switch subject.Role {
	case model.RoleTeacher:
		kind = service.GridTeacherAvailability
	case model.RoleStudent:
		kind = service.GridStudentAvailability
	default:
		h.sendError(ctx, b, chatID, "❌ Для администратора сетка доступности не ведётся. Используйте /availability ID")
		return
	}

	h.openGrid(ctx, b, chatID, user, kind, subject)
}

// HandleFees обрабатывает команду /fees ID - сетка оплат студента
func (h *Handlers) HandleFees(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.sendError(ctx, b, chatID, "❌ Использование: /fees ID_студента")
		return
	}

	studentID, err := parseID(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, "❌ Использование: /fees ID_студента")
		return
	}

	student, err := h.userService.GetByID(ctx, studentID)
	if err != nil || student == nil {
		h.sendServiceError(ctx, b, chatID, service.ErrUserNotFound, "open_fees")
		return
	}

	h.openGrid(ctx, b, chatID, user, service.GridFees, student)
}

func (h *Handlers) openGrid(ctx context.Context, b *bot.Bot, chatID int64, owner *model.User, kind service.GridKind, subject *model.User) {
	from := model.DateOf(h.clock().In(h.location))

	grid, err := h.gridService.Open(ctx, owner, kind, subject.ID, from, h.gridDays)
	if err != nil {
		h.sendServiceError(ctx, b, chatID, err, "open_grid")
		return
	}

	opts := gridview.Options{}
	if subject.ID != owner.ID {
		opts.Title = subject.DisplayName()
	}

	text, kb := gridview.Render(grid, opts)
	h.sendMessage(ctx, b, chatID, text, kb)
}
