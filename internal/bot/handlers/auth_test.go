package handlers_test

import (
	"testing"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot/handlers"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
)

func TestIsOperator(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Telegram.AdminUserID = 42
	cfg.Telegram.ControlChatID = -100999

	cases := []struct {
		name   string
		userID int64
		chatID int64
		want   bool
	}{
		{"operator in control chat", 42, -100999, true},
		{"operator in another chat", 42, -100123, false},
		{"other user in control chat", 7, -100999, false},
		{"other user elsewhere", 7, -100123, false},
		{"operator in private chat", 42, 42, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := handlers.IsOperator(cfg, tc.userID, tc.chatID); got != tc.want {
				t.Fatalf("IsOperator(%d, %d) = %v, want %v", tc.userID, tc.chatID, got, tc.want)
			}
		})
	}
}
