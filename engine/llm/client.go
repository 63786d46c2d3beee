package llm

import (
	"context"
	"fmt"

	"github.com/gastos-labs/gastos-gateway/engine/core"
	"github.com/gastos-labs/gastos-gateway/pkg/config"
	"github.com/gastos-labs/gastos-gateway/pkg/logger"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// NoResponseText is returned when the model answers with no usable content.
// An empty completion is a valid-but-empty result, not an error.
const NoResponseText = "Sin respuesta"

// Request describes a single chat-completion call.
type Request struct {
	SystemPrompt string
	UserText     string
	MaxTokens    int
	Temperature  float64
}

// Client is the narrow completion interface the orchestrator depends on.
type Client interface {
	Complete(ctx context.Context, req *Request) (string, error)
}

// GroqClient calls the Groq OpenAI-compatible chat-completion endpoint.
type GroqClient struct {
	model     llms.Model
	modelName string
}

// NewGroqClient builds the production client from the process configuration.
func NewGroqClient(cfg *config.GroqConfig) (*GroqClient, error) {
	model, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey.Value()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}
	return &GroqClient{model: model, modelName: cfg.Model}, nil
}

// Complete runs one completion. Transport and API failures become a
// core.UpstreamError; the call is attempted exactly once.
func (c *GroqClient) Complete(ctx context.Context, req *Request) (string, error) {
	log := logger.FromContext(ctx)
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, req.UserText),
	}
	options := []llms.CallOption{}
	if req.MaxTokens > 0 {
		options = append(options, llms.WithMaxTokens(req.MaxTokens))
	}
	if req.Temperature > 0 {
		options = append(options, llms.WithTemperature(req.Temperature))
	}
	log.Debug("calling completion API", "model", c.modelName, "max_tokens", req.MaxTokens)
	response, err := c.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return "", core.NewUpstreamError(err)
	}
	return extractText(response), nil
}

func extractText(response *llms.ContentResponse) string {
	if response == nil || len(response.Choices) == 0 {
		return NoResponseText
	}
	if content := response.Choices[0].Content; content != "" {
		return content
	}
	return NoResponseText
}
