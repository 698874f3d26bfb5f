package handlers

import "github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"

// IsOperator reports whether an interactive command or callback may be
// honored: it must come from the configured operator inside the control
// chat. Everything else is silently ignored, so the menu never leaks to
// other users or chats.
func IsOperator(cfg *config.Config, userID, chatID int64) bool {
	return userID == cfg.Telegram.AdminUserID && chatID == cfg.Telegram.ControlChatID
}
