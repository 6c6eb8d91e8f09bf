package service

import (
	"context"
	"fmt"
	"skillsphere_backend/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AIClient is the narrow surface the services need from the LLM provider.
// Implementations may fail or time out; callers always degrade to a
// deterministic fallback instead of surfacing the error.
type AIClient interface {
	// CompleteJSON asks for a single JSON-object response.
	CompleteJSON(ctx context.Context, system, prompt string) (string, error)
	// Chat runs a plain multi-turn completion.
	Chat(ctx context.Context, messages []AIChatMessage, maxTokens int) (string, error)
}

// AIService talks to an OpenAI-compatible chat-completions endpoint.
type AIService struct {
	config config.AIConfig
	client *openai.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &AIService{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (s *AIService) model() string {
	if s.config.Model != "" {
		return s.config.Model
	}
	return openai.GPT4oMini
}

func (s *AIService) CompleteJSON(ctx context.Context, system, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model(),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *AIService) Chat(ctx context.Context, messages []AIChatMessage, maxTokens int) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	if maxTokens == 0 {
		maxTokens = s.config.MaxTokens
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model(),
		Messages:    chatMessages,
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
