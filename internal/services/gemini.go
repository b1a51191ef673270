package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"github.com/dvnsh5/kathachitra/internal/models"
)

// ---------------------------------------------------------------------------
// Gemini story generation service — primary story backend.
// ---------------------------------------------------------------------------

const geminiStoryModel = "gemini-2.0-flash"

type GeminiService struct {
	apiKey string
	model  string
}

// Ensure GeminiService implements StoryService at compile time.
var _ StoryService = (*GeminiService)(nil)

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  geminiStoryModel,
	}
}

// GenerateStory asks Gemini for a story as a JSON object and parses it.
func (s *GeminiService) GenerateStory(ctx context.Context, culture, language, theme string) (*models.Story, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	log.Printf("[Gemini] Generating story (culture=%s, language=%s, theme=%s)", culture, language, theme)

	resp, err := client.Models.GenerateContent(ctx, s.model,
		genai.Text(storyPrompt(culture, language, theme)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0.9),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini story generation failed: %w", err)
	}

	story, err := parseStoryJSON(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("gemini returned invalid story: %w", err)
	}

	log.Printf("[Gemini] Story generated: %q (%d chars)", story.Title, len(story.StoryText))
	return story, nil
}
