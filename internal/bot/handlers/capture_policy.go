package handlers

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// RejectReason explains why an incoming message was not stored.
type RejectReason string

const (
	RejectNone        RejectReason = ""
	RejectNoText      RejectReason = "no_text"
	RejectChatType    RejectReason = "chat_type"
	RejectControlChat RejectReason = "control_chat"
	RejectCommand     RejectReason = "command"
)

// ShouldCapture decides whether a message belongs in the archive.
// Only plain text from group or supergroup chats is kept; the control
// chat and bot commands are never archived.
func ShouldCapture(msg *models.Message, controlChatID int64) RejectReason {
	if msg == nil || strings.TrimSpace(msg.Text) == "" {
		return RejectNoText
	}

	if msg.Chat.Type != "group" && msg.Chat.Type != "supergroup" {
		return RejectChatType
	}

	if msg.Chat.ID == controlChatID {
		return RejectControlChat
	}

	if strings.HasPrefix(strings.TrimSpace(msg.Text), "/") {
		return RejectCommand
	}

	return RejectNone
}

// SenderName resolves the display name recorded alongside a message.
// Falls back through full name, username, then a generic placeholder.
func SenderName(from *models.User) string {
	if from == nil {
		return "Desconhecido"
	}

	name := strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName))
	if name != "" {
		return name
	}

	if from.Username != "" {
		return from.Username
	}

	return "Desconhecido"
}
