package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStatusHandler returns the handler for the /status command, which
// reports archive counters. It answers in any chat so a deployment can be
// checked in place.
func NewStatusHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return statusHandler{deps}.Handle
}

type statusHandler struct {
	deps HandlerDeps
}

func (h statusHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "status")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	counts, err := h.deps.Store.GetCounts(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to get counts", "error", err)
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.ErrorStorage})
		return
	}

	text := fmt.Sprintf("📊 Status\n\nGrupos: %d\nTópicos: %d\nMensagens: %d",
		counts.Chats, counts.Threads, counts.Messages)

	if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send status", "error", err, "chat_id", chatID)
	}
}
