package handlers

import (
	"context"
	"database/sql"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
)

// NewCaptureHandler returns the default handler. It serves two purposes:
// typed date input from the operator while the wizard is waiting for one,
// and passive archiving of group chatter. Capture failures are logged and
// swallowed so the bot never reacts inside monitored groups.
func NewCaptureHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return captureHandler{deps}.Handle
}

type captureHandler struct {
	deps HandlerDeps
}

func (h captureHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	if msg.From != nil && h.handleDateInput(ctx, b, msg) {
		return
	}

	h.capture(ctx, msg)
}

// handleDateInput consumes a typed date when the operator's session is
// waiting for one. Returns true when the message was treated as wizard
// input, valid or not.
func (h captureHandler) handleDateInput(ctx context.Context, b *tgbot.Bot, msg *models.Message) bool {
	if !IsOperator(h.deps.Config, msg.From.ID, msg.Chat.ID) {
		return false
	}

	s, ok := h.deps.Sessions.Get(msg.From.ID)
	if !ok || !s.AwaitingDate {
		return false
	}

	log := h.deps.Logger.With("handler", "date_input", "user_id", msg.From.ID)

	day, err := dates.ResolveToken(strings.TrimSpace(msg.Text), dates.Now())
	if err != nil {
		log.DebugContext(ctx, "Rejected typed date", "text", msg.Text)
		if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   h.deps.Config.Messages.InvalidDate,
		}); err != nil {
			log.ErrorContext(ctx, "Failed to send invalid date notice", "error", err)
		}
		// Still awaiting; the operator can just type again.
		return true
	}

	h.deps.Sessions.Clear(msg.From.ID)

	if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   h.deps.Config.Messages.Generating,
	}); err != nil {
		log.ErrorContext(ctx, "Failed to send progress notice", "error", err)
	}

	req := DigestRequest{
		GroupID:  s.GroupID,
		ThreadID: s.ThreadID,
		ByTopic:  s.ByTopic,
		Day:      day,
	}
	if err := RunDigest(ctx, b, h.deps, req); err != nil {
		log.ErrorContext(ctx, "Digest run failed", "error", err)
	}
	return true
}

func (h captureHandler) capture(ctx context.Context, msg *models.Message) {
	log := h.deps.Logger.With("handler", "capture")

	if reason := ShouldCapture(msg, h.deps.Config.Telegram.ControlChatID); reason != RejectNone {
		log.DebugContext(ctx, "Skipping message", "reason", reason, "chat_id", msg.Chat.ID)
		return
	}

	now := dates.Now()

	if err := h.deps.Store.UpsertChat(ctx, msg.Chat.ID, msg.Chat.Title, now); err != nil {
		log.ErrorContext(ctx, "Failed to upsert chat", "error", err, "chat_id", msg.Chat.ID)
	}

	record := &database.Message{
		ChatID:    msg.Chat.ID,
		UserName:  SenderName(msg.From),
		Text:      msg.Text,
		CreatedAt: now,
	}
	if msg.MessageThreadID != 0 {
		record.ThreadID = sql.NullInt64{Int64: int64(msg.MessageThreadID), Valid: true}
	}
	if msg.From != nil {
		record.UserID = sql.NullInt64{Int64: msg.From.ID, Valid: true}
	}

	if err := h.deps.Store.SaveMessage(ctx, record); err != nil {
		log.ErrorContext(ctx, "Failed to save message", "error", err, "chat_id", msg.Chat.ID)
		return
	}

	log.DebugContext(ctx, "Message archived", "chat_id", msg.Chat.ID, "message_id", record.ID)
}
