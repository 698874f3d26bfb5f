// Package handlers contains the Telegram command, capture and callback
// handlers for the digest bot, along with their registration logic.
package handlers

import (
	"log/slog"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/session"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/summary"
)

// HandlerDeps provides shared dependencies for all handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Assembler *summary.Assembler
	Sessions  *session.Manager
}
