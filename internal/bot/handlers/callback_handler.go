package handlers

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/session"
)

// NewCallbackHandler returns the handler for wizard keyboard presses. Every
// press is acknowledged, decoded into a typed action and applied to the
// operator's session, and the menu message is edited in place.
func NewCallbackHandler(deps HandlerDeps) tgbot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback")

	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	// Acknowledge first so the button stops spinning regardless of outcome.
	if _, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID}); err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err)
	}

	if cq.Message.Message == nil {
		log.WarnContext(ctx, "Callback on inaccessible message", "data", cq.Data)
		return
	}
	chatID := cq.Message.Message.Chat.ID
	menuMsgID := cq.Message.Message.ID

	if !IsOperator(h.deps.Config, cq.From.ID, chatID) {
		log.DebugContext(ctx, "Ignoring callback outside operator context", "user_id", cq.From.ID, "chat_id", chatID)
		return
	}

	action, err := DecodeAction(cq.Data)
	if err != nil {
		log.WarnContext(ctx, "Rejecting malformed callback payload", "data", cq.Data, "error", err)
		return
	}

	s, ok := h.deps.Sessions.Get(cq.From.ID)
	if !ok {
		// Expired or never started; a press on a stale menu restarts it.
		s = h.deps.Sessions.Start(cq.From.ID)
	}
	s.MenuMsgID = menuMsgID
	s.AwaitingDate = false

	log.DebugContext(ctx, "Applying wizard action", "kind", action.Kind, "data", cq.Data)

	switch action.Kind {
	case ActionRefresh:
		h.showGroups(ctx, b, log, chatID, menuMsgID)
		h.deps.Sessions.Put(cq.From.ID, s)

	case ActionPickGroup:
		s.GroupID = action.GroupID
		s.ByTopic = false
		s.ThreadID = nil
		h.showMode(ctx, b, chatID, menuMsgID)
		h.deps.Sessions.Put(cq.From.ID, s)

	case ActionPickMode:
		s.ByTopic = action.ByTopic
		s.ThreadID = nil
		if action.ByTopic {
			h.showTopics(ctx, b, log, chatID, menuMsgID, s.GroupID)
		} else {
			h.showDate(ctx, b, chatID, menuMsgID, MenuMode)
		}
		h.deps.Sessions.Put(cq.From.ID, s)

	case ActionPickTopic:
		s.ThreadID = action.ThreadID
		h.showDate(ctx, b, chatID, menuMsgID, MenuTopics)
		h.deps.Sessions.Put(cq.From.ID, s)

	case ActionBack:
		switch action.BackTo {
		case MenuGroups:
			h.showGroups(ctx, b, log, chatID, menuMsgID)
		case MenuMode:
			s.ByTopic = false
			s.ThreadID = nil
			h.showMode(ctx, b, chatID, menuMsgID)
		case MenuTopics:
			s.ThreadID = nil
			h.showTopics(ctx, b, log, chatID, menuMsgID, s.GroupID)
		}
		h.deps.Sessions.Put(cq.From.ID, s)

	case ActionPickDay:
		h.pickDay(ctx, b, log, chatID, menuMsgID, cq.From.ID, s, action.Day)
	}
}

func (h callbackHandler) pickDay(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, menuMsgID int, userID int64, s session.Session, token string) {
	if token == DayAsk {
		s.AwaitingDate = true
		h.deps.Sessions.Put(userID, s)
		h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.AskDate, nil)
		return
	}

	day, err := dates.ResolveToken(token, dates.Now())
	if err != nil {
		log.ErrorContext(ctx, "Unresolvable day token from validated action", "token", token, "error", err)
		return
	}

	// The wizard is done; swap the menu for a progress note and run it.
	h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.Generating, nil)
	h.deps.Sessions.Clear(userID)

	req := DigestRequest{
		GroupID:  s.GroupID,
		ThreadID: s.ThreadID,
		ByTopic:  s.ByTopic,
		Day:      day,
	}
	if err := RunDigest(ctx, b, h.deps, req); err != nil {
		log.ErrorContext(ctx, "Digest run failed", "error", err)
	}
}

func (h callbackHandler) showGroups(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, menuMsgID int) {
	chats, err := h.deps.Store.ListChats(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list chats", "error", err)
		h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.ErrorStorage, nil)
		return
	}
	if len(chats) == 0 {
		h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.NoGroups, nil)
		return
	}
	h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.ChooseGroup, GroupMenu(chats, h.deps.Config.Messages))
}

func (h callbackHandler) showMode(ctx context.Context, b *tgbot.Bot, chatID int64, menuMsgID int) {
	h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.ChooseMode, ModeMenu(h.deps.Config.Messages))
}

func (h callbackHandler) showTopics(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, menuMsgID int, groupID int64) {
	threads, err := h.deps.Store.GetThreads(ctx, groupID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to list topics", "error", err, "group_id", groupID)
		h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.ErrorStorage, nil)
		return
	}
	h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.ChooseTopic, TopicMenu(threads, h.deps.Config.Messages))
}

func (h callbackHandler) showDate(ctx context.Context, b *tgbot.Bot, chatID int64, menuMsgID int, backTo Menu) {
	h.edit(ctx, b, chatID, menuMsgID, h.deps.Config.Messages.ChooseDate, DateMenu(h.deps.Config.Messages, backTo))
}

func (h callbackHandler) edit(ctx context.Context, b *tgbot.Bot, chatID int64, msgID int, text string, markup *models.InlineKeyboardMarkup) {
	params := &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: msgID,
		Text:      text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := b.EditMessageText(ctx, params); err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to edit menu message", "error", err, "chat_id", chatID, "message_id", msgID)
	}
}
