package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dvnsh5/kathachitra/internal/models"
)

// ---------------------------------------------------------------------------
// Groq story generation service — fallback story backend.
// Groq exposes an OpenAI-compatible chat API, so the go-openai client with
// a custom base URL drives it. A randomized story angle and seed keep
// repeated requests for the same culture/theme from converging on the
// same tale.
// ---------------------------------------------------------------------------

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.3-70b-versatile"
)

// storyAngles add narrative variety to otherwise identical prompts.
var storyAngles = []string{
	"a young protagonist discovering",
	"an elderly sage teaching",
	"a brave warrior facing",
	"a clever trickster outwitting",
	"a devoted lover seeking",
	"a curious child learning",
	"a humble farmer encountering",
	"a princess challenging",
	"a wandering musician finding",
	"a skilled craftsman creating",
}

type GroqService struct {
	client *openai.Client
	model  string
}

// Ensure GroqService implements StoryService at compile time.
var _ StoryService = (*GroqService)(nil)

// NewGroqService creates a Groq story service. model falls back to the
// default when empty.
func NewGroqService(apiKey, model string) *GroqService {
	if model == "" {
		model = groqDefaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &GroqService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GenerateStory asks Groq for a story as a JSON object and parses it.
func (s *GroqService) GenerateStory(ctx context.Context, culture, language, theme string) (*models.Story, error) {
	angle := storyAngles[rand.Intn(len(storyAngles))]
	seed := fmt.Sprintf("%d_%04d", time.Now().UnixMilli(), rand.Intn(9000)+1000)

	log.Printf("[Groq] Generating story (culture=%s, language=%s, theme=%s, angle=%q)",
		culture, language, theme, angle)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"You are a master storyteller of %s culture writing in %s. You respond with JSON only.",
					culture, language),
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s\n\nCenter the story on %s. Variety seed: %s.",
					storyPrompt(culture, language, theme), angle, seed),
			},
		},
		Temperature: 0.9,
		MaxTokens:   4000,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("groq story generation failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("groq returned no choices")
	}

	story, err := parseStoryJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("groq returned invalid story: %w", err)
	}

	log.Printf("[Groq] Story generated: %q (%d chars)", story.Title, len(story.StoryText))
	return story, nil
}
