package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns the handler for the /start command, the entry
// point of the digest wizard.
func NewStartHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return startHandler{deps}.Handle
}

type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	if !IsOperator(h.deps.Config, userID, chatID) {
		log.DebugContext(ctx, "Ignoring /start outside operator context", "user_id", userID, "chat_id", chatID)
		return
	}

	log.InfoContext(ctx, "Starting digest wizard", "user_id", userID)

	chats, err := h.deps.Store.ListChats(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list chats", "error", err)
		_, _ = b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.ErrorStorage})
		return
	}
	if len(chats) == 0 {
		_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: h.deps.Config.Messages.NoGroups})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send empty directory notice", "error", err)
		}
		return
	}

	sent, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.deps.Config.Messages.ChooseGroup,
		ReplyMarkup: GroupMenu(chats, h.deps.Config.Messages),
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send group menu", "error", err)
		return
	}

	s := h.deps.Sessions.Start(userID)
	s.MenuMsgID = sent.ID
	h.deps.Sessions.Put(userID, s)
	log.DebugContext(ctx, "Group menu sent", "menu_msg_id", sent.ID, "groups", len(chats))
}
