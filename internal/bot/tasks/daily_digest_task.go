package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot/handlers"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
)

// newDailyDigestTask creates the scheduled task that digests the previous
// day for every known group and delivers the results to the control chat.
// Per-topic layout is used when the day actually has topic traffic.
func newDailyDigestTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "daily_digest")

	handlerDeps := handlers.HandlerDeps{
		Logger:    deps.Logger,
		Config:    deps.Config,
		Store:     deps.Store,
		Assembler: deps.Assembler,
	}

	return func(ctx context.Context) error {
		day := dates.DayOf(dates.Now().AddDate(0, 0, -1))
		log.InfoContext(ctx, "Starting daily digest task", "day", day.Format(dates.DateLayout))
		startTime := time.Now()

		chats, err := deps.Store.ListChats(ctx)
		if err != nil {
			log.ErrorContext(ctx, "Failed to list chats", "error", err)
			return fmt.Errorf("failed to list chats: %w", err)
		}
		if len(chats) == 0 {
			log.InfoContext(ctx, "No groups registered, nothing to digest")
			return nil
		}

		var failures int
		for _, chat := range chats {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			threads, err := deps.Store.GetThreadsForDay(ctx, chat.ChatID, day)
			if err != nil {
				log.ErrorContext(ctx, "Failed to list day topics", "chat_id", chat.ChatID, "error", err)
				failures++
				continue
			}

			req := handlers.DigestRequest{
				GroupID: chat.ChatID,
				ByTopic: len(threads) > 0,
				Day:     day,
			}
			if err := handlers.RunDigest(ctx, deps.TgBot, handlerDeps, req); err != nil {
				log.ErrorContext(ctx, "Digest run failed", "chat_id", chat.ChatID, "error", err)
				failures++
			}
		}

		log.InfoContext(ctx, "Daily digest task completed",
			"groups", len(chats), "failures", failures, "duration", time.Since(startTime))

		if failures == len(chats) {
			return fmt.Errorf("daily digest failed for all %d groups", failures)
		}
		return nil
	}
}
