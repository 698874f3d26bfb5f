package gemini_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/gemini"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want gemini.ErrorCategory
	}{
		{"nil", nil, gemini.CategoryOther},
		{"quota 429", &genai.APIError{Code: 429, Message: "quota exceeded"}, gemini.CategoryQuota},
		{"wrapped quota", fmt.Errorf("gemini API call failed: %w", &genai.APIError{Code: 429}), gemini.CategoryQuota},
		{"server error", &genai.APIError{Code: 500}, gemini.CategoryOther},
		{"blocked", fmt.Errorf("%w: safety", gemini.ErrBlocked), gemini.CategoryBlocked},
		{"network timeout", timeoutErr{}, gemini.CategoryConnectivity},
		{"deadline exceeded", context.DeadlineExceeded, gemini.CategoryConnectivity},
		{"plain error", errors.New("boom"), gemini.CategoryOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := gemini.ClassifyError(tc.err); got != tc.want {
				t.Fatalf("ClassifyError() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNoticeDistinguishesCategories(t *testing.T) {
	t.Parallel()

	quota := gemini.Notice(&genai.APIError{Code: 429})
	if !strings.Contains(quota, "Cota") {
		t.Errorf("quota notice should mention the quota, got %q", quota)
	}

	blocked := gemini.Notice(fmt.Errorf("%w: safety", gemini.ErrBlocked))
	if !strings.Contains(blocked, "bloqueado") {
		t.Errorf("blocked notice should mention the block, got %q", blocked)
	}

	if quota == blocked {
		t.Error("distinct failure categories should produce distinct notices")
	}
}
