package handlers

import (
	"context"
	"log/slog"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/gemini"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/summary"
)

// DigestRequest identifies one digest run: which group, which thread slice,
// which layout and which civil day.
type DigestRequest struct {
	GroupID  int64
	ThreadID *int64 // nil means every thread
	ByTopic  bool
	Day      time.Time
}

// RunDigest retrieves the day slice, generates the digest and delivers it to
// the control chat in chunks. Progress feedback is the caller's job; all
// failures here are reported to the operator as a short notice, and the
// returned error is for logging only.
func RunDigest(ctx context.Context, b *tgbot.Bot, deps HandlerDeps, req DigestRequest) error {
	log := deps.Logger.With("component", "digest",
		"group_id", req.GroupID, "day", req.Day.Format(dates.DateLayout), threadAttr(req.ThreadID))
	controlChat := deps.Config.Telegram.ControlChatID
	msgs := deps.Config.Messages

	notify := func(text string) {
		if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: controlChat, Text: text}); err != nil {
			log.ErrorContext(ctx, "Failed to notify operator", "error", err)
		}
	}

	rows, err := deps.Store.GetMessagesForDay(ctx, req.GroupID, req.ThreadID, req.Day)
	if err != nil {
		log.ErrorContext(ctx, "Failed to retrieve day slice", "error", err)
		notify(msgs.ErrorStorage)
		return err
	}
	if len(rows) == 0 {
		log.InfoContext(ctx, "No messages for requested day")
		notify(msgs.NothingFound)
		return nil
	}

	mode := summary.ModeGeneral
	if req.ByTopic && req.ThreadID == nil {
		mode = summary.ModeByTopic
	}

	log.InfoContext(ctx, "Generating digest", "rows", len(rows), "by_topic", mode == summary.ModeByTopic)

	digest, err := deps.Assembler.Digest(ctx, rows, mode)
	if err != nil {
		log.ErrorContext(ctx, "Digest generation failed",
			"category", gemini.ClassifyError(err), "error", err)
		notify(gemini.Notice(err))
		return err
	}

	if err := sendChunked(ctx, b, controlChat, digest, deps.Config.Summary.ChunkSize); err != nil {
		log.ErrorContext(ctx, "Failed to deliver digest", "error", err)
		return err
	}

	log.InfoContext(ctx, "Digest delivered", "chars", len(digest))
	return nil
}

// threadAttr renders the optional thread filter for log lines.
func threadAttr(threadID *int64) slog.Attr {
	if threadID == nil {
		return slog.String("thread", "all")
	}
	return slog.Int64("thread", *threadID)
}
