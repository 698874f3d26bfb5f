// Package tasks implements the scheduled tasks of the digest bot, along
// with their registration mechanism.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/summary"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger    *slog.Logger
	Store     database.Store
	Assembler *summary.Assembler
	Config    *config.Config
	TgBot     *tgbot.Bot
}
