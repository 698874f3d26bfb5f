package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
)

// DefaultDayQueryLimit caps day-scoped reads when the caller does not
// configure one, bounding downstream prompt size.
const DefaultDayQueryLimit = 4000

// Store defines the data access operations for the message log and the chat
// directory. All methods accept a context for cancellation.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveMessage appends one captured message.
	SaveMessage(ctx context.Context, message *Message) error

	// UpsertChat records a chat observation. Idempotent; last writer wins
	// on title and last_seen.
	UpsertChat(ctx context.Context, chatID int64, title string, seenAt time.Time) error

	// GetMessagesForDay returns all messages for a chat within the civil day
	// containing 'day', ascending by capture time. A nil threadID means all
	// threads; a non-nil value filters to that thread.
	GetMessagesForDay(ctx context.Context, chatID int64, threadID *int64, day time.Time) ([]Message, error)

	// GetThreadsForDay returns the distinct thread identifiers that have at
	// least one message for the chat within the given civil day.
	GetThreadsForDay(ctx context.Context, chatID int64, day time.Time) ([]int64, error)

	// GetThreads returns every thread identifier ever seen for the chat.
	GetThreads(ctx context.Context, chatID int64) ([]int64, error)

	// ListChats returns the chat directory, most recently seen first.
	ListChats(ctx context.Context) ([]Chat, error)

	// GetCounts returns the status readout counters.
	GetCounts(ctx context.Context) (Counts, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

type sqlxStore struct {
	db       *sqlx.DB
	logger   *slog.Logger
	dayLimit int
}

// NewStore creates a Store backed by sqlx. dayLimit caps day-scoped reads;
// values <= 0 fall back to DefaultDayQueryLimit.
func NewStore(db *sqlx.DB, logger *slog.Logger, dayLimit int) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if dayLimit <= 0 {
		dayLimit = DefaultDayQueryLimit
	}
	return &sqlxStore{
		db:       db,
		logger:   logger.With("component", "store"),
		dayLimit: dayLimit,
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveMessage appends one message row. There is no uniqueness constraint:
// duplicate content is accepted, and only storage I/O errors fail the caller.
func (s *sqlxStore) SaveMessage(ctx context.Context, message *Message) error {
	if message == nil {
		return fmt.Errorf("cannot save nil message")
	}
	if message.ChatID == 0 {
		return fmt.Errorf("message must have a non-zero chat_id")
	}
	if strings.TrimSpace(message.Text) == "" {
		return fmt.Errorf("message must have non-empty text")
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = dates.Now()
	}

	query := `
        INSERT INTO messages (chat_id, thread_id, user_id, user_name, text, created_at)
        VALUES (:chat_id, :thread_id, :user_id, :user_name, :text, :created_at);
    `

	result, err := s.db.NamedExecContext(ctx, query, message)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving message", "chat_id", message.ChatID, "error", err)
		return fmt.Errorf("failed to save message (chat %d): %w", message.ChatID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		message.ID = id
	}

	s.logger.DebugContext(ctx, "Message saved", "chat_id", message.ChatID, "message_id", message.ID)
	return nil
}

// UpsertChat inserts or refreshes a chat directory row.
func (s *sqlxStore) UpsertChat(ctx context.Context, chatID int64, title string, seenAt time.Time) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}
	if seenAt.IsZero() {
		seenAt = dates.Now()
	}

	query := `
        INSERT INTO chats (chat_id, title, last_seen)
        VALUES (?, ?, ?)
        ON CONFLICT(chat_id) DO UPDATE SET title = excluded.title, last_seen = excluded.last_seen;
    `

	if _, err := s.db.ExecContext(ctx, query, chatID, title, seenAt); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to upsert chat %d: %w", chatID, err)
	}
	return nil
}

func (s *sqlxStore) GetMessagesForDay(ctx context.Context, chatID int64, threadID *int64, day time.Time) ([]Message, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	start, end := dates.DayBounds(day)

	var (
		messages []Message
		err      error
	)
	if threadID == nil {
		query := `
            SELECT id, chat_id, thread_id, user_id, user_name, text, created_at
            FROM messages
            WHERE chat_id = ? AND created_at >= ? AND created_at < ?
            ORDER BY created_at ASC, id ASC
            LIMIT ?;
        `
		err = s.db.SelectContext(ctx, &messages, query, chatID, start, end, s.dayLimit)
	} else {
		query := `
            SELECT id, chat_id, thread_id, user_id, user_name, text, created_at
            FROM messages
            WHERE chat_id = ? AND thread_id = ? AND created_at >= ? AND created_at < ?
            ORDER BY created_at ASC, id ASC
            LIMIT ?;
        `
		err = s.db.SelectContext(ctx, &messages, query, chatID, *threadID, start, end, s.dayLimit)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting messages for day", "chat_id", chatID, "day", start.Format(dates.DateLayout), "error", err)
		return nil, fmt.Errorf("failed to get messages for chat %d: %w", chatID, err)
	}

	s.logger.DebugContext(ctx, "Fetched day messages", "chat_id", chatID, "count", len(messages))
	return messages, nil
}

func (s *sqlxStore) GetThreadsForDay(ctx context.Context, chatID int64, day time.Time) ([]int64, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	start, end := dates.DayBounds(day)

	var threads []int64
	query := `
        SELECT DISTINCT thread_id FROM messages
        WHERE chat_id = ? AND thread_id IS NOT NULL AND created_at >= ? AND created_at < ?
        ORDER BY thread_id ASC;
    `
	if err := s.db.SelectContext(ctx, &threads, query, chatID, start, end); err != nil {
		s.logger.ErrorContext(ctx, "Error getting threads for day", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get threads for chat %d: %w", chatID, err)
	}
	return threads, nil
}

func (s *sqlxStore) GetThreads(ctx context.Context, chatID int64) ([]int64, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var threads []int64
	query := `
        SELECT DISTINCT thread_id FROM messages
        WHERE chat_id = ? AND thread_id IS NOT NULL
        ORDER BY thread_id ASC;
    `
	if err := s.db.SelectContext(ctx, &threads, query, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error getting threads", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get threads for chat %d: %w", chatID, err)
	}
	return threads, nil
}

func (s *sqlxStore) ListChats(ctx context.Context) ([]Chat, error) {
	var chats []Chat
	query := `SELECT chat_id, title, last_seen FROM chats ORDER BY last_seen DESC;`
	if err := s.db.SelectContext(ctx, &chats, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing chats", "error", err)
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

// RunSQLMaintenance reclaims space and refreshes planner statistics. Meant
// to run off-peak; VACUUM takes an exclusive lock.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance")

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "VACUUM failed", "error", err)
		return fmt.Errorf("vacuum failed: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		s.logger.ErrorContext(ctx, "ANALYZE failed", "error", err)
		return fmt.Errorf("analyze failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}

func (s *sqlxStore) GetCounts(ctx context.Context) (Counts, error) {
	var counts Counts
	query := `
        SELECT COUNT(DISTINCT chat_id) AS chats,
               COUNT(DISTINCT chat_id || ':' || COALESCE(thread_id, 0)) AS threads,
               COUNT(*) AS messages
        FROM messages;
    `
	if err := s.db.GetContext(ctx, &counts, query); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Counts{}, err
		}
		s.logger.ErrorContext(ctx, "Error getting counts", "error", err)
		return Counts{}, fmt.Errorf("failed to get counts: %w", err)
	}
	return counts, nil
}
