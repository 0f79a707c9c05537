package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// GoogleAIGateway calls the Gemini generative-language API.
type GoogleAIGateway struct {
	llm     *googleai.GoogleAI
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGoogleAIGateway creates a gateway bound to the given model.
// timeout bounds each Generate call; the upstream API itself offers no
// latency guarantee.
func NewGoogleAIGateway(ctx context.Context, apiKey, model string, timeout time.Duration, logger *zap.Logger) (*GoogleAIGateway, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create googleai client: %w", err)
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &GoogleAIGateway{
		llm:     llm,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate sends the prompt and returns the model's raw text reply.
func (g *GoogleAIGateway) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	output, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		g.logger.Error("Model call failed",
			zap.String("model", g.model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", fmt.Errorf("model call failed: %w", err)
	}

	g.logger.Info("Model call completed",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("reply_chars", len(output)))

	return output, nil
}
