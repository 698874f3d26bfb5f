package handlers

import (
	"context"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
)

// NewSummaryHandler returns the handler for the /resumo command, the direct
// path that skips the wizard: it summarizes the most recently seen group for
// the requested day in general mode.
func NewSummaryHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return summaryHandler{deps}.Handle
}

type summaryHandler struct {
	deps HandlerDeps
}

func (h summaryHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "summary")

	if update.Message == nil || update.Message.From == nil {
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	if !IsOperator(h.deps.Config, userID, chatID) {
		log.DebugContext(ctx, "Ignoring /resumo outside operator context", "user_id", userID, "chat_id", chatID)
		return
	}

	reply := func(text string) {
		if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
			log.ErrorContext(ctx, "Failed to reply", "error", err)
		}
	}

	fields := strings.Fields(update.Message.Text)
	if len(fields) != 2 {
		reply(h.deps.Config.Messages.SummaryUsage)
		return
	}

	day, err := dates.ResolveToken(fields[1], dates.Now())
	if err != nil {
		log.DebugContext(ctx, "Rejected date token", "token", fields[1])
		reply(h.deps.Config.Messages.InvalidDate)
		return
	}

	chats, err := h.deps.Store.ListChats(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list chats", "error", err)
		reply(h.deps.Config.Messages.ErrorStorage)
		return
	}
	if len(chats) == 0 {
		reply(h.deps.Config.Messages.NoGroups)
		return
	}

	reply(h.deps.Config.Messages.Generating)

	req := DigestRequest{GroupID: chats[0].ChatID, Day: day}
	if err := RunDigest(ctx, b, h.deps, req); err != nil {
		log.ErrorContext(ctx, "Digest run failed", "error", err)
	}
}
