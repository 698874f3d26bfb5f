// Package gemini implements the digest generation client on top of Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/genai"

	"github.com/renanmartoliveira-creator/bot-resumo-telegram/internal/config"
)

// Client wraps the genai SDK for single-shot digest generation.
type Client struct {
	genaiClient *genai.Client
	log         *slog.Logger
	baseConfig  *genai.GenerateContentConfig
	modelName   string
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a Gemini client from the given configuration.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if log == nil {
		log = slog.Default()
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	temperature := cfg.Temperature
	baseCfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.ModelName)
	return &Client{
		genaiClient: gi,
		log:         logger,
		baseConfig:  baseCfg,
		modelName:   cfg.ModelName,
		timeout:     cfg.Timeout,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}, nil
}

// Generate sends one synchronous generation request and returns the produced
// text. Retries are attempted only for transient server errors (500/503);
// everything else fails immediately so the operator gets a prompt answer.
func (c *Client) Generate(ctx context.Context, instruction, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cfg := *c.baseConfig
	if instruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: instruction}}}
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	var resp *genai.GenerateContentResponse
	var err error
	for i := 0; i <= c.maxRetries; i++ {
		resp, err = c.genaiClient.Models.GenerateContent(ctx, c.modelName, contents, &cfg)
		if err == nil {
			break
		}

		var apiErr *genai.APIError
		if errors.As(err, &apiErr) && (apiErr.Code == 500 || apiErr.Code == 503) && i < c.maxRetries {
			c.log.WarnContext(ctx, "Gemini API call failed, retrying", "attempt", i+1, "code", apiErr.Code, "delay", c.retryDelay)
			time.Sleep(c.retryDelay)
			continue
		}

		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reason = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked by safety filter", "reason", reason)
		return "", fmt.Errorf("%w: %s", ErrBlocked, reason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		c.log.WarnContext(ctx, "Gemini response carried no content")
		return "", nil
	}

	return resp.Text(), nil
}

// ErrBlocked marks responses refused by the safety filter.
var ErrBlocked = errors.New("generation blocked")

// ErrorCategory is the coarse classification surfaced to the operator when
// generation fails.
type ErrorCategory string

const (
	CategoryQuota        ErrorCategory = "quota"
	CategoryConnectivity ErrorCategory = "connectivity"
	CategoryBlocked      ErrorCategory = "blocked"
	CategoryOther        ErrorCategory = "other"
)

// ClassifyError maps a generation error to its coarse category.
func ClassifyError(err error) ErrorCategory {
	if err == nil {
		return CategoryOther
	}

	if errors.Is(err, ErrBlocked) {
		return CategoryBlocked
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 {
			return CategoryQuota
		}
		return CategoryOther
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryConnectivity
	}

	return CategoryOther
}

// Notice renders the operator-facing failure message for a generation error.
func Notice(err error) string {
	switch ClassifyError(err) {
	case CategoryQuota:
		return "❌ Cota da API de geração esgotada. Tente novamente mais tarde."
	case CategoryConnectivity:
		return "❌ Falha de conexão com o serviço de geração."
	case CategoryBlocked:
		return "❌ O conteúdo foi bloqueado pelo filtro de segurança do modelo."
	default:
		return "❌ Falha ao gerar o resumo."
	}
}
