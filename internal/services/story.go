package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dvnsh5/kathachitra/internal/models"
)

// ---------------------------------------------------------------------------
// StoryService — common interface for story-generation backends
// Gemini is the primary provider and Groq the fallback; both return the
// same Story shape so the API layer can chain them.
// ---------------------------------------------------------------------------

// StoryService generates a cultural story for a culture/language/theme.
type StoryService interface {
	GenerateStory(ctx context.Context, culture, language, theme string) (*models.Story, error)
}

// minStoryLength guards against truncated or refused model outputs.
const minStoryLength = 100

// parseStoryJSON extracts the Story object from a model response,
// tolerating markdown code fences around the JSON.
func parseStoryJSON(raw string) (*models.Story, error) {
	cleaned := strings.TrimSpace(raw)
	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	var story models.Story
	if err := json.Unmarshal([]byte(cleaned), &story); err != nil {
		return nil, fmt.Errorf("failed to parse story JSON: %w", err)
	}

	if len(story.StoryText) < minStoryLength {
		return nil, fmt.Errorf("story text too short (%d chars)", len(story.StoryText))
	}
	if story.Title == "" {
		story.Title = "Untitled Story"
	}

	return &story, nil
}

// storyPrompt is the shared prompt shape both providers use.
func storyPrompt(culture, language, theme string) string {
	return fmt.Sprintf(`Write a culturally authentic %s %s in %s.

Rules:
- The story must be 150-250 words, told in a warm narrative voice
- Include a short moral
- Image prompts must be under 40 words and describe a single scene
- Respond with JSON only, no commentary

JSON schema:
{
  "title": "Story title in %s",
  "story_text": "The full story in %s",
  "moral": "The moral of the story",
  "story_image_prompt": "Visual description for main story image",
  "video_image_prompt": "Visual description for background video image"
}`, culture, theme, language, language, language)
}
