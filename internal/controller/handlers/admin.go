package handlers

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_dashboard/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_dashboard/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandlePolicy обрабатывает команду /policy ID checked|unrestricted
func (h *Handlers) HandlePolicy(ctx context.Context, b *bot.Bot, update *models.Update) {
	admin, ok := h.requireAdmin(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	usage := "❌ Использование: /policy ID_учителя checked|unrestricted"

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		h.sendError(ctx, b, chatID, usage)
		return
	}

	teacherID, err := parseID(args[0])
	if err != nil {
		h.sendError(ctx, b, chatID, usage)
		return
	}

	policy, ok := model.ParseRestrictionPolicy(args[1])
	if !ok {
		h.sendError(ctx, b, chatID, usage)
		return
	}

	if err := h.userService.SetRestrictionPolicy(ctx, admin, teacherID, policy); err != nil {
		h.sendServiceError(ctx, b, chatID, err, "set_policy")
		return
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Учитель ID %d: запись %s", teacherID, formatting.GetPolicyDisplay(policy)), nil)
}
