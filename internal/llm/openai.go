package llm

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const analysisSystemPrompt = "You are a clinical psychiatrist providing comprehensive mental health assessments. " +
	"Provide professional, evidence-based analysis while emphasizing the need for in-person professional evaluation."

// OpenAIClient calls the OpenAI chat completion API. The same client backs
// OpenRouter, which speaks the OpenAI wire protocol on a different base URL.
type OpenAIClient struct {
	client   *openai.Client
	model    string
	timeout  time.Duration
	provider string
}

func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	return &OpenAIClient{
		client:   openai.NewClient(apiKey),
		model:    model,
		timeout:  timeout,
		provider: "openai",
	}
}

func NewOpenRouterClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://openrouter.ai/api/v1"
	return &OpenAIClient{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		timeout:  timeout,
		provider: "openrouter",
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", capabilityErr(c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", capabilityErr(c.provider, errEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}
