package models

// Story is a generated cultural story plus the image prompts that
// illustrate it.
type Story struct {
	Title            string `json:"title"`
	StoryText        string `json:"story_text"`
	Moral            string `json:"moral,omitempty"`
	StoryImagePrompt string `json:"story_image_prompt,omitempty"`
	VideoImagePrompt string `json:"video_image_prompt,omitempty"`
}

// DTOs for API requests and responses.

type GenerateRequest struct {
	Culture  string `json:"culture"`
	Language string `json:"language"`
	Theme    string `json:"theme"`
}

type GenerateResponse struct {
	Title     string  `json:"title"`
	Culture   string  `json:"culture"`
	Language  string  `json:"language"`
	StoryText string  `json:"story_text"`
	Moral     *string `json:"moral,omitempty"`
	// Base64 image payloads; populated by the image-generation
	// collaborator when one is wired in.
	StoryImage *string `json:"story_image,omitempty"`
	VideoImage *string `json:"video_image,omitempty"`
}

type VideoGenerateRequest struct {
	Title          string  `json:"title"`
	Culture        string  `json:"culture"`
	Language       string  `json:"language"`
	StoryText      string  `json:"story_text"`
	VideoImage     string  `json:"video_image,omitempty"` // base64 background image
	Moral          *string `json:"moral,omitempty"`
	EnableCaptions bool    `json:"enable_captions"`
	VoiceStyle     string  `json:"voice_style,omitempty"` // default "storyteller"
}

type HealthResponse struct {
	Status             string   `json:"status"` // "healthy" or "degraded"
	Version            string   `json:"version"`
	StoryConfigured    bool     `json:"story_configured"`
	SupportedCultures  []string `json:"supported_cultures"`
	SupportedLanguages []string `json:"supported_languages"`
	StoryThemes        []string `json:"story_themes"`
}
