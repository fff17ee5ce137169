package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/roadmap-planner-api/internal/constants"
	"github.com/yukikurage/roadmap-planner-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

type GeneratedItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateItemsFromText extracts roadmap item drafts from free text
// using OpenAI GPT
func (s *AIService) GenerateItemsFromText(ctx context.Context, text string) ([]GeneratedItem, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`You are a roadmap planning assistant. Extract concrete roadmap items from the text below.

Text:
%s

Return a JSON array of the extracted items in this exact shape:
[
  {
    "title": "short item title",
    "description": "what the item covers in one or two sentences",
    "status": "now, next or later depending on how soon the text suggests it should happen",
    "category": "tech, business or mixed",
    "tags": ["optional", "keywords"]
  }
]

Rules:
- Return an empty array [] if the text contains no actionable items
- status must be exactly one of: now, next, later
- category must be exactly one of: tech, business, mixed
- Return only the JSON, no surrounding prose`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var items []GeneratedItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(items) > constants.MaxAIGeneratedItems {
		items = items[:constants.MaxAIGeneratedItems]
	}

	// Model output is untrusted; fall back to defaults like the CSV
	// importer does.
	for i := range items {
		if !models.ValidStatus(models.ItemStatus(items[i].Status)) {
			items[i].Status = string(models.StatusLater)
		}
		if !models.ValidCategory(models.ItemCategory(items[i].Category)) {
			items[i].Category = string(models.CategoryBusiness)
		}
	}

	return items, nil
}
