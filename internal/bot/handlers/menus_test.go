package handlers_test

import (
	"testing"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot/handlers"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
)

func testMessages() config.MessagesConfig {
	return config.MessagesConfig{
		BtnAllTopics:   "📋 Todos tópicos",
		BtnRefresh:     "🔄 Atualizar lista de grupos",
		BtnToday:       "📅 Hoje",
		BtnYesterday:   "📅 Ontem",
		BtnOtherDate:   "📅 Outra data",
		BtnBack:        "⬅️ Voltar",
		BtnModeGeneral: "📝 Resumo geral",
		BtnModeTopics:  "🧵 Por tópico",
	}
}

func TestGroupMenu(t *testing.T) {
	t.Parallel()

	chats := []database.Chat{
		{ChatID: -100123, Title: "Obra Centro"},
		{ChatID: -100456, Title: ""},
	}

	menu := handlers.GroupMenu(chats, testMessages())

	if len(menu.InlineKeyboard) != 3 {
		t.Fatalf("expected 2 group rows plus refresh, got %d rows", len(menu.InlineKeyboard))
	}

	if got := menu.InlineKeyboard[0][0].CallbackData; got != "grp:-100123" {
		t.Errorf("first group callback = %q, want grp:-100123", got)
	}
	if got := menu.InlineKeyboard[1][0].Text; got != "Grupo -100456" {
		t.Errorf("untitled chat should get a fallback label, got %q", got)
	}
	if got := menu.InlineKeyboard[2][0].CallbackData; got != "refresh" {
		t.Errorf("last row should refresh, got %q", got)
	}
}

func TestTopicMenu(t *testing.T) {
	t.Parallel()

	menu := handlers.TopicMenu([]int64{7, 9}, testMessages())

	if len(menu.InlineKeyboard) != 4 {
		t.Fatalf("expected all-topics, 2 topics and back, got %d rows", len(menu.InlineKeyboard))
	}
	if got := menu.InlineKeyboard[0][0].CallbackData; got != "top:all" {
		t.Errorf("first row = %q, want top:all", got)
	}
	if got := menu.InlineKeyboard[1][0].CallbackData; got != "top:7" {
		t.Errorf("second row = %q, want top:7", got)
	}
	if got := menu.InlineKeyboard[3][0].CallbackData; got != "back:mode" {
		t.Errorf("back row = %q, want back:mode", got)
	}
}

func TestDateMenuBackTarget(t *testing.T) {
	t.Parallel()

	msgs := testMessages()

	viaMode := handlers.DateMenu(msgs, handlers.MenuMode)
	rows := viaMode.InlineKeyboard
	if got := rows[len(rows)-1][0].CallbackData; got != "back:mode" {
		t.Errorf("general path back = %q, want back:mode", got)
	}

	viaTopics := handlers.DateMenu(msgs, handlers.MenuTopics)
	rows = viaTopics.InlineKeyboard
	if got := rows[len(rows)-1][0].CallbackData; got != "back:topics" {
		t.Errorf("topic path back = %q, want back:topics", got)
	}

	if got := viaMode.InlineKeyboard[0][0].CallbackData; got != "day:hoje" {
		t.Errorf("first day button = %q, want day:hoje", got)
	}
	if got := viaMode.InlineKeyboard[0][1].CallbackData; got != "day:ontem" {
		t.Errorf("second day button = %q, want day:ontem", got)
	}
	if got := viaMode.InlineKeyboard[1][0].CallbackData; got != "day:ask" {
		t.Errorf("other-date button = %q, want day:ask", got)
	}
}
