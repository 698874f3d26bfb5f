package handlers

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
)

// SplitChunks splits text into pieces of at most size runes so long digests
// fit under the Telegram message limit. The cut prefers the last line break
// inside the window; a single oversized line is cut mid-line. Chunks that
// end up empty after trimming are dropped, since Telegram rejects empty
// message text.
func SplitChunks(text string, size int) []string {
	if size <= 0 {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= size {
			chunks = append(chunks, string(runes))
			break
		}

		window := string(runes[:size])
		cut := size
		if idx := strings.LastIndexByte(window, '\n'); idx > 0 {
			cut = len([]rune(window[:idx]))
		}

		if chunk := strings.TrimRight(string(runes[:cut]), "\n"); chunk != "" {
			chunks = append(chunks, chunk)
		}
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}

	return chunks
}

// sendChunked delivers text to a chat, split into sequential messages when it
// exceeds the configured chunk size. Delivery stops on the first send error.
func sendChunked(ctx context.Context, b *tgbot.Bot, chatID int64, text string, size int) error {
	for i, chunk := range SplitChunks(text, size) {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: chunk}); err != nil {
			return fmt.Errorf("failed to send chunk %d: %w", i+1, err)
		}
	}
	return nil
}
