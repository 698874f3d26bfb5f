package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"google.golang.org/genai"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/bot/handlers"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/summary"
)

// telegramRecorder captures the bodies of sendMessage calls made against the
// fake Bot API server.
type telegramRecorder struct {
	mu   sync.Mutex
	sent []string
}

func (r *telegramRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sent...)
}

func newTestBot(t *testing.T) (*tgbot.Bot, *telegramRecorder) {
	t.Helper()

	rec := &telegramRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")

		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			rec.mu.Lock()
			rec.sent = append(rec.sent, string(body))
			rec.mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":1,"chat":{"id":-100999,"type":"supergroup"}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	t.Cleanup(srv.Close)

	b, err := tgbot.New("123:test", tgbot.WithServerURL(srv.URL), tgbot.WithSkipGetMe())
	if err != nil {
		t.Fatalf("failed to create test bot: %v", err)
	}
	return b, rec
}

// fakeStore serves a fixed day slice; the embedded interface panics on
// anything RunDigest should not touch.
type fakeStore struct {
	database.Store
	rows []database.Message
	err  error
}

func (f *fakeStore) GetMessagesForDay(_ context.Context, _ int64, _ *int64, _ time.Time) ([]database.Message, error) {
	return f.rows, f.err
}

type scriptedGenerator struct {
	reply string
	err   error
	calls int
}

func (g *scriptedGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	g.calls++
	return g.reply, g.err
}

func newDigestDeps(store database.Store, gen summary.Generator) handlers.HandlerDeps {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.Telegram.AdminUserID = 42
	cfg.Telegram.ControlChatID = testControlChatID
	cfg.Summary.ChunkSize = 4000
	cfg.Messages.NothingFound = "Nada encontrado."
	cfg.Messages.ErrorStorage = "❌ Falha ao consultar as mensagens armazenadas."

	return handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Store:     store,
		Assembler: summary.NewAssembler(gen, "instrução", summary.Options{EmptySummary: "vazio"}, log),
	}
}

func digestRows() []database.Message {
	return []database.Message{
		{ChatID: -100123, UserName: "Ana", Text: "bom dia", CreatedAt: time.Date(2026, 2, 15, 9, 0, 0, 0, dates.Location)},
		{ChatID: -100123, UserName: "Bruno", Text: "tudo certo", CreatedAt: time.Date(2026, 2, 15, 10, 0, 0, 0, dates.Location)},
	}
}

func TestRunDigestDeliversToControlChat(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{reply: "OK"}
	deps := newDigestDeps(&fakeStore{rows: digestRows()}, gen)
	b, rec := newTestBot(t)

	req := handlers.DigestRequest{GroupID: -100123, Day: time.Date(2026, 2, 15, 0, 0, 0, 0, dates.Location)}
	if err := handlers.RunDigest(context.Background(), b, deps, req); err != nil {
		t.Fatalf("RunDigest failed: %v", err)
	}

	sent := rec.snapshot()
	if len(sent) != 1 {
		t.Fatalf("expected 1 delivered message, got %d: %v", len(sent), sent)
	}
	if !strings.Contains(sent[0], `"OK"`) {
		t.Errorf("delivered message should carry the digest text, got %s", sent[0])
	}
	if !strings.Contains(sent[0], "-100999") {
		t.Errorf("digest should go to the control chat, got %s", sent[0])
	}
	if gen.calls != 1 {
		t.Errorf("backend called %d times, want 1", gen.calls)
	}
}

func TestRunDigestQuotaFailureNotifiesWithoutRetry(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{err: &genai.APIError{Code: 429, Message: "quota exceeded"}}
	deps := newDigestDeps(&fakeStore{rows: digestRows()}, gen)
	b, rec := newTestBot(t)

	req := handlers.DigestRequest{GroupID: -100123, Day: time.Date(2026, 2, 15, 0, 0, 0, 0, dates.Location)}
	if err := handlers.RunDigest(context.Background(), b, deps, req); err == nil {
		t.Fatal("RunDigest should surface the generation error")
	}

	sent := rec.snapshot()
	if len(sent) != 1 {
		t.Fatalf("expected 1 notice, got %d: %v", len(sent), sent)
	}
	if !strings.Contains(sent[0], "Cota") {
		t.Errorf("operator notice should name the quota failure, got %s", sent[0])
	}
	if gen.calls != 1 {
		t.Errorf("backend called %d times, want exactly 1 (no retry)", gen.calls)
	}
}

func TestRunDigestEmptyDay(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{reply: "OK"}
	deps := newDigestDeps(&fakeStore{}, gen)
	b, rec := newTestBot(t)

	req := handlers.DigestRequest{GroupID: -100123, Day: time.Date(2026, 2, 15, 0, 0, 0, 0, dates.Location)}
	if err := handlers.RunDigest(context.Background(), b, deps, req); err != nil {
		t.Fatalf("RunDigest failed: %v", err)
	}

	sent := rec.snapshot()
	if len(sent) != 1 || !strings.Contains(sent[0], "Nada encontrado.") {
		t.Fatalf("expected only the nothing-found notice, got %v", sent)
	}
	if gen.calls != 0 {
		t.Errorf("backend should not be called for an empty day, got %d calls", gen.calls)
	}
}
