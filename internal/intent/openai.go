package intent

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const systemPromptTemplate = `Ты — ассистент руководителя. Сегодня %s.
Верни ТОЛЬКО JSON.

ВАЖНО: в "summary" всегда включай дату и время, если они есть! Пример: "С Регина 8 ноября в 20:00 по адресу Уфа"

Действия:
- "create"
- "list"
- "route"
- "get_location"
- "update_location"
- "update_summary"

Примеры:
• "Встреча с Лейсан 10 ноября в 15:00" → {"action":"create","summary":"С Лейсан 10 ноября в 15:00","datetime":"2025-11-10T15:00:00"}
• "Измени встречу 8 ноября, добавь имя Регина" → {"action":"update_summary","query":"8 ноября","new_summary":"С Регина 8 ноября в 20:00"}
• "Добавь адрес Королева 30 к встрече 8 ноября" → {"action":"update_location","query":"8 ноября","location":"Уфа, Королева 30"}
• "Покажи встречи" → {"action":"list"}`

// OpenAIClassifier calls an OpenAI-compatible chat-completions endpoint
// (Groq-style services work via BaseURL) and parses the JSON reply.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIClassifier builds a classifier against the given endpoint.
func NewOpenAIClassifier(baseURL, apiKey, model string) *OpenAIClassifier {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClassifier{client: openai.NewClientWithConfig(cfg), model: model}
}

// Classify implements Classifier.
func (c *OpenAIClassifier) Classify(ctx context.Context, userMsg string, today time.Time) (*Intent, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPromptTemplate, today.Format("2006-01-02"))},
			{Role: openai.ChatMessageRoleUser, Content: "Сообщение: " + userMsg},
		},
		Temperature: 0.2,
		MaxTokens:   300,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("intent: classifier call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("intent: classifier returned no choices")
	}
	return Parse(resp.Choices[0].Message.Content)
}
