package summary_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/summary"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
	// captured inputs from the last call
	instruction string
	prompt      string
}

func (s *stubGenerator) Generate(_ context.Context, instruction, prompt string) (string, error) {
	s.calls++
	s.instruction = instruction
	s.prompt = prompt
	return s.reply, s.err
}

func msgAt(user, text string, hour int, threadID int64) database.Message {
	m := database.Message{
		ChatID:    100,
		UserName:  user,
		Text:      text,
		CreatedAt: time.Date(2026, 2, 15, hour, 0, 0, 0, dates.Location),
	}
	if threadID > 0 {
		m.ThreadID = sql.NullInt64{Int64: threadID, Valid: true}
	}
	return m
}

func TestDigestReturnsBackendReply(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "OK"}
	a := summary.NewAssembler(gen, "instrução", summary.Options{EmptySummary: "vazio"}, nil)

	rows := []database.Message{
		msgAt("Alice", "ping", 9, 0),
		msgAt("Bob", "pong", 10, 0),
	}

	out, err := a.Digest(context.Background(), rows, summary.ModeGeneral)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if out != "OK" {
		t.Errorf("expected digest OK, got %q", out)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly one backend call, got %d", gen.calls)
	}
	if gen.instruction != "instrução" {
		t.Errorf("instruction not forwarded, got %q", gen.instruction)
	}
	if !strings.Contains(gen.prompt, "Alice: ping") || !strings.Contains(gen.prompt, "Bob: pong") {
		t.Errorf("prompt missing formatted rows:\n%s", gen.prompt)
	}
}

func TestDigestBackendFailureNotRetried(t *testing.T) {
	t.Parallel()

	quotaErr := errors.New("quota exceeded")
	gen := &stubGenerator{err: quotaErr}
	a := summary.NewAssembler(gen, "i", summary.Options{}, nil)

	_, err := a.Digest(context.Background(), []database.Message{msgAt("Alice", "x", 9, 0)}, summary.ModeGeneral)
	if !errors.Is(err, quotaErr) {
		t.Fatalf("expected backend error to surface, got %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("expected no retry, backend called %d times", gen.calls)
	}
}

func TestDigestEmptyReplyReplaced(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "  \n "}
	a := summary.NewAssembler(gen, "i", summary.Options{EmptySummary: "resumo vazio"}, nil)

	out, err := a.Digest(context.Background(), []database.Message{msgAt("Alice", "x", 9, 0)}, summary.ModeGeneral)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if out != "resumo vazio" {
		t.Errorf("expected empty-summary substitute, got %q", out)
	}
}

func TestDigestRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{reply: "OK"}
	a := summary.NewAssembler(gen, "i", summary.Options{}, nil)

	if _, err := a.Digest(context.Background(), nil, summary.ModeGeneral); err == nil {
		t.Error("expected error for empty row set")
	}
	if gen.calls != 0 {
		t.Errorf("backend should not be called for empty input, got %d calls", gen.calls)
	}
}

func TestBuildPromptByTopicGrouping(t *testing.T) {
	t.Parallel()

	a := summary.NewAssembler(&stubGenerator{}, "i", summary.Options{}, nil)

	rows := []database.Message{
		msgAt("Carol", "assunto nove", 11, 9),
		msgAt("Alice", "sem tópico", 9, 0),
		msgAt("Bob", "assunto sete", 10, 7),
	}

	prompt := a.BuildPrompt(rows, summary.ModeByTopic)

	geral := strings.Index(prompt, "== Geral ==")
	sete := strings.Index(prompt, "== Tópico 7 ==")
	nove := strings.Index(prompt, "== Tópico 9 ==")
	if geral < 0 || sete < 0 || nove < 0 {
		t.Fatalf("missing topic blocks:\n%s", prompt)
	}
	if !(geral < sete && sete < nove) {
		t.Errorf("topic blocks out of order (geral=%d, 7=%d, 9=%d)", geral, sete, nove)
	}
}

func TestBuildPromptTruncatesLongMessages(t *testing.T) {
	t.Parallel()

	a := summary.NewAssembler(&stubGenerator{}, "i", summary.Options{MaxMessageChars: 20}, nil)

	long := strings.Repeat("ã", 100)
	prompt := a.BuildPrompt([]database.Message{msgAt("Alice", long, 9, 0)}, summary.ModeGeneral)

	if strings.Contains(prompt, long) {
		t.Error("long message was not truncated")
	}
	if !strings.Contains(prompt, "…") {
		t.Error("truncated message missing ellipsis")
	}
}

func TestBuildPromptCeilingKeepsRecentContent(t *testing.T) {
	t.Parallel()

	note := "NOTA DE CORTE\n\n"
	a := summary.NewAssembler(&stubGenerator{}, "i", summary.Options{
		MaxPromptChars: 2000,
		TruncationNote: note,
	}, nil)

	rows := make([]database.Message, 0, 100)
	for i := 0; i < 100; i++ {
		rows = append(rows, msgAt("Alice", strings.Repeat("x", 50), 9, 0))
	}
	rows = append(rows, msgAt("Bob", "mensagem final", 23, 0))

	prompt := a.BuildPrompt(rows, summary.ModeGeneral)

	if !strings.HasPrefix(prompt, note) {
		t.Error("truncated prompt missing notice prefix")
	}
	if !strings.Contains(prompt, "mensagem final") {
		t.Error("most recent content was dropped by front truncation")
	}
	if got := len([]rune(prompt)); got > 2000+len([]rune(note)) {
		t.Errorf("prompt exceeds ceiling: %d runes", got)
	}
}

func TestBuildPromptFallbackUserName(t *testing.T) {
	t.Parallel()

	a := summary.NewAssembler(&stubGenerator{}, "i", summary.Options{}, nil)
	prompt := a.BuildPrompt([]database.Message{msgAt("", "oi", 9, 0)}, summary.ModeGeneral)

	if !strings.Contains(prompt, "Desconhecido: oi") {
		t.Errorf("expected placeholder sender name, got:\n%s", prompt)
	}
}
