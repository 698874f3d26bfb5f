// Package summary turns a retrieved slice of captured messages into a
// bounded prompt and obtains a generated digest from a text-generation
// backend.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/database"
	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/dates"
)

// Generator is the text-generation backend. Implementations make exactly one
// synchronous attempt per call from the assembler's point of view; retrying
// is their own business.
type Generator interface {
	Generate(ctx context.Context, instruction, prompt string) (string, error)
}

// Mode selects how retrieved rows are laid out in the prompt.
type Mode int

const (
	// ModeGeneral presents all messages as one chronological block.
	ModeGeneral Mode = iota
	// ModeByTopic partitions messages by thread, one block per topic.
	ModeByTopic
)

// Options bounds the assembled prompt. Zero values fall back to defaults.
type Options struct {
	MaxMessageChars int    // per-message truncation threshold, in runes
	MaxPromptChars  int    // whole-prompt ceiling, in runes
	TruncationNote  string // prefixed when older content is cut
	EmptySummary    string // substituted when the backend returns nothing
}

const (
	defaultMaxMessageChars = 400
	defaultMaxPromptChars  = 12000
)

// Assembler builds digest prompts and invokes the generation backend.
type Assembler struct {
	gen         Generator
	log         *slog.Logger
	instruction string
	opts        Options
}

// NewAssembler creates an Assembler around the given backend.
func NewAssembler(gen Generator, instruction string, opts Options, log *slog.Logger) *Assembler {
	if opts.MaxMessageChars <= 0 {
		opts.MaxMessageChars = defaultMaxMessageChars
	}
	if opts.MaxPromptChars <= 0 {
		opts.MaxPromptChars = defaultMaxPromptChars
	}
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{
		gen:         gen,
		log:         log.With("component", "summary_assembler"),
		instruction: instruction,
		opts:        opts,
	}
}

// Digest formats rows according to mode, bounds the prompt and asks the
// backend for a digest. Identical inputs always regenerate; nothing is
// cached. A successful but empty backend reply is replaced by the configured
// empty-summary message so the operator never sees a blank response.
func (a *Assembler) Digest(ctx context.Context, rows []database.Message, mode Mode) (string, error) {
	if len(rows) == 0 {
		return "", fmt.Errorf("no messages to summarize")
	}

	prompt := a.BuildPrompt(rows, mode)

	a.log.DebugContext(ctx, "Requesting digest", "rows", len(rows), "prompt_chars", len(prompt))
	out, err := a.gen.Generate(ctx, a.instruction, prompt)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		a.log.WarnContext(ctx, "Backend returned empty digest")
		return a.opts.EmptySummary, nil
	}
	return out, nil
}

// BuildPrompt renders rows into the bounded prompt text.
func (a *Assembler) BuildPrompt(rows []database.Message, mode Mode) string {
	var body string
	if mode == ModeByTopic {
		body = a.formatByTopic(rows)
	} else {
		body = a.formatChronological(rows)
	}
	return a.bound(body)
}

func (a *Assembler) formatChronological(rows []database.Message) string {
	var sb strings.Builder
	for _, m := range rows {
		sb.WriteString(a.formatRow(&m))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// formatByTopic partitions rows by thread id. Messages without a topic are
// grouped under sentinel key 0 and labeled as the general block; blocks are
// ordered by numeric thread id, so the general block comes first.
func (a *Assembler) formatByTopic(rows []database.Message) string {
	groups := make(map[int64][]database.Message)
	for _, m := range rows {
		key := int64(0)
		if m.ThreadID.Valid {
			key = m.ThreadID.Int64
		}
		groups[key] = append(groups[key], m)
	}

	keys := make([]int64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	blocks := make([]string, 0, len(keys))
	for _, k := range keys {
		var sb strings.Builder
		if k == 0 {
			sb.WriteString("== Geral ==\n")
		} else {
			fmt.Fprintf(&sb, "== Tópico %d ==\n", k)
		}
		for _, m := range groups[k] {
			sb.WriteString(a.formatRow(&m))
			sb.WriteByte('\n')
		}
		blocks = append(blocks, sb.String())
	}

	return strings.Join(blocks, "\n")
}

func (a *Assembler) formatRow(m *database.Message) string {
	user := m.UserName
	if user == "" {
		user = "Desconhecido"
	}
	return fmt.Sprintf("%s — %s: %s",
		m.CreatedAt.In(dates.Location).Format("15:04"),
		user,
		truncateRunes(m.Text, a.opts.MaxMessageChars),
	)
}

// bound enforces the prompt ceiling, keeping the most recent content. The
// cut lands on a line boundary and the configured notice is prefixed so the
// operator knows older messages were dropped.
func (a *Assembler) bound(body string) string {
	runes := []rune(body)
	if len(runes) <= a.opts.MaxPromptChars {
		return body
	}

	kept := string(runes[len(runes)-a.opts.MaxPromptChars:])
	if idx := strings.IndexByte(kept, '\n'); idx >= 0 && idx+1 < len(kept) {
		kept = kept[idx+1:]
	}
	return a.opts.TruncationNote + kept
}

func truncateRunes(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes-1]) + "…"
}
