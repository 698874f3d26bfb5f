// Package config manages application configuration from defaults, an
// optional config.yaml file, and BOT_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// TelegramConfig holds Telegram transport settings. BotInfo is populated at
// startup from GetMe and is not read from the config file.
type TelegramConfig struct {
	Token         string `mapstructure:"token"           validate:"required"`
	AdminUserID   int64  `mapstructure:"admin_user_id"   validate:"required,gt=0"`
	ControlChatID int64  `mapstructure:"control_chat_id" validate:"required"`

	BotInfo *models.User `mapstructure:"-"`
}

// GeminiConfig holds settings for the Gemini generation client.
type GeminiConfig struct {
	APIKey            string        `mapstructure:"api_key"     validate:"required"`
	ModelName         string        `mapstructure:"model"       validate:"required"`
	Temperature       float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout           time.Duration `mapstructure:"timeout"     validate:"min=1s,max=10m"`
	MaxRetries        int           `mapstructure:"max_retries" validate:"min=0,max=5"`
	RetryDelaySeconds int           `mapstructure:"retry_delay_seconds"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// SummaryConfig bounds the size of retrieved slices and assembled prompts.
type SummaryConfig struct {
	MaxDayRows      int `mapstructure:"max_day_rows"      validate:"min=1"`
	MaxMessageChars int `mapstructure:"max_message_chars" validate:"min=50"`
	MaxPromptChars  int `mapstructure:"max_prompt_chars"  validate:"min=1000"`
	ChunkSize       int `mapstructure:"chunk_size"        validate:"min=100,max=4096"`
}

// TaskConfig configures one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// SchedulerConfig holds the scheduled task table.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// MessagesConfig holds every operator-facing string so deployments can
// relabel the menus without rebuilding.
type MessagesConfig struct {
	ChooseGroup   string `mapstructure:"choose_group"`
	ChooseMode    string `mapstructure:"choose_mode"`
	ChooseTopic   string `mapstructure:"choose_topic"`
	ChooseDate    string `mapstructure:"choose_date"`
	AskDate       string `mapstructure:"ask_date"`
	InvalidDate   string `mapstructure:"invalid_date"`
	NothingFound  string `mapstructure:"nothing_found"`
	Generating    string `mapstructure:"generating"`
	EmptySummary  string `mapstructure:"empty_summary"`
	NoGroups      string `mapstructure:"no_groups"`
	SummaryUsage  string `mapstructure:"summary_usage"`
	ErrorGeneral  string `mapstructure:"error_general"`
	ErrorStorage  string `mapstructure:"error_storage"`
	TruncationNote string `mapstructure:"truncation_note"`

	BtnAllTopics   string `mapstructure:"btn_all_topics"`
	BtnRefresh     string `mapstructure:"btn_refresh"`
	BtnToday       string `mapstructure:"btn_today"`
	BtnYesterday   string `mapstructure:"btn_yesterday"`
	BtnOtherDate   string `mapstructure:"btn_other_date"`
	BtnBack        string `mapstructure:"btn_back"`
	BtnModeGeneral string `mapstructure:"btn_mode_general"`
	BtnModeTopics  string `mapstructure:"btn_mode_topics"`
}

// Config is the complete application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Summary   SummaryConfig   `mapstructure:"summary"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoadConfig reads configuration from the given YAML file (optional), merges
// it over defaults and BOT_* environment variables, and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults still apply.
		var pathErr *fs.PathError
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("database.path", "storage.db")

	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.temperature", 0.7)
	v.SetDefault("gemini.timeout", 90*time.Second)
	v.SetDefault("gemini.max_retries", 2)
	v.SetDefault("gemini.retry_delay_seconds", 5)

	v.SetDefault("summary.max_day_rows", 4000)
	v.SetDefault("summary.max_message_chars", 400)
	v.SetDefault("summary.max_prompt_chars", 12000)
	v.SetDefault("summary.chunk_size", 4000)

	v.SetDefault("messages.choose_group", "Escolha um grupo:")
	v.SetDefault("messages.choose_mode", "Escolha o tipo de resumo:")
	v.SetDefault("messages.choose_topic", "Escolha um tópico:")
	v.SetDefault("messages.choose_date", "Escolha a data:")
	v.SetDefault("messages.ask_date", "Digite a data no formato DD/MM/AAAA:")
	v.SetDefault("messages.invalid_date", "Data inválida. Use hoje, ontem ou DD/MM/AAAA.")
	v.SetDefault("messages.nothing_found", "Nada encontrado.")
	v.SetDefault("messages.generating", "⏳ Gerando resumo...")
	v.SetDefault("messages.empty_summary", "O modelo retornou um resumo vazio.")
	v.SetDefault("messages.no_groups", "Nenhum grupo registrado ainda.")
	v.SetDefault("messages.summary_usage", "Uso: /resumo <hoje|ontem|DD/MM/AAAA>")
	v.SetDefault("messages.error_general", "❌ Ocorreu um erro. Tente novamente mais tarde.")
	v.SetDefault("messages.error_storage", "❌ Falha ao consultar as mensagens armazenadas.")
	v.SetDefault("messages.truncation_note", "⚠️ Mensagens mais antigas foram cortadas para caber no limite.\n\n")

	v.SetDefault("messages.btn_all_topics", "📋 Todos tópicos")
	v.SetDefault("messages.btn_refresh", "🔄 Atualizar lista de grupos")
	v.SetDefault("messages.btn_today", "📅 Hoje")
	v.SetDefault("messages.btn_yesterday", "📅 Ontem")
	v.SetDefault("messages.btn_other_date", "📅 Outra data")
	v.SetDefault("messages.btn_back", "⬅️ Voltar")
	v.SetDefault("messages.btn_mode_general", "📝 Resumo geral")
	v.SetDefault("messages.btn_mode_topics", "🧵 Por tópico")
}
