package database

import (
	"database/sql"
	"time"
)

// Message is one captured group-chat message. Rows are append-only: they are
// inserted on capture and never updated or deleted.
type Message struct {
	ID        int64         `db:"id"`
	ChatID    int64         `db:"chat_id"`
	ThreadID  sql.NullInt64 `db:"thread_id"` // NULL means the message has no topic
	UserID    sql.NullInt64 `db:"user_id"`
	UserName  string        `db:"user_name"`
	Text      string        `db:"text"`
	CreatedAt time.Time     `db:"created_at"`
}

// Chat is one row of the chat directory, upserted on every capture so that
// title and last_seen always reflect the most recent observation. It exists
// only to populate the operator's group menu.
type Chat struct {
	ChatID   int64     `db:"chat_id"`
	Title    string    `db:"title"`
	LastSeen time.Time `db:"last_seen"`
}

// Counts is the status readout: distinct chats, distinct (chat, thread)
// pairs, and total captured messages.
type Counts struct {
	Chats    int64 `db:"chats"`
	Threads  int64 `db:"threads"`
	Messages int64 `db:"messages"`
}
