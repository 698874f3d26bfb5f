package handlers

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewIDHandler returns the handler for the /id command, which echoes the
// identifiers needed to configure the bot: user, chat and, inside a topic,
// the thread.
func NewIDHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return idHandler{deps}.Handle
}

type idHandler struct {
	deps HandlerDeps
}

func (h idHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "id")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	msg := update.Message

	text := fmt.Sprintf("👤 user_id: %d\n💬 chat_id: %d", msg.From.ID, msg.Chat.ID)
	if msg.MessageThreadID != 0 {
		text += fmt.Sprintf("\n🧵 thread_id: %d", msg.MessageThreadID)
	}

	params := &tgbot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		MessageThreadID: msg.MessageThreadID,
		Text:            text,
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		log.ErrorContext(ctx, "Failed to send id readout", "error", err, "chat_id", msg.Chat.ID)
	}
}
