package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ---------------------------------------------------------------------------
// ElevenLabs Text-to-Speech Service
// Uses the ElevenLabs REST API to convert story text into narration audio.
// Model: eleven_multilingual_v2 — covers every language in languageCodes.
// ---------------------------------------------------------------------------

const (
	elevenLabsBaseURL      = "https://api.elevenlabs.io"
	elevenLabsDefaultModel = "eleven_multilingual_v2"
	elevenLabsDefaultVoice = "pNInz6obpgDQGcFmaJgB"
	elevenLabsOutputFormat = "mp3_44100_128"
)

// voiceStyleSettings maps a narration style to delivery parameters.
// Storyteller is the default: slower and steady, like the pacing of a
// spoken folk tale.
type voiceStyleSetting struct {
	speed     float64
	stability float64
	style     float64
}

var voiceStyleSettings = map[string]voiceStyleSetting{
	"friendly":     {speed: 1.05, stability: 0.55, style: 0.40},
	"professional": {speed: 0.95, stability: 0.75, style: 0.15},
	"storyteller":  {speed: 0.90, stability: 0.60, style: 0.35},
	"gentle":       {speed: 0.85, stability: 0.70, style: 0.25},
	"energetic":    {speed: 1.15, stability: 0.45, style: 0.55},
}

// ElevenLabsService handles text-to-speech via the ElevenLabs API.
type ElevenLabsService struct {
	apiKey  string
	voiceID string
	modelID string
	client  *http.Client
}

// Ensure ElevenLabsService implements TTSService at compile time.
var _ TTSService = (*ElevenLabsService)(nil)

// NewElevenLabsService creates an ElevenLabs narration service. voiceID
// falls back to the service default when empty.
func NewElevenLabsService(apiKey, voiceID string) *ElevenLabsService {
	if voiceID == "" {
		voiceID = elevenLabsDefaultVoice
	}
	return &ElevenLabsService{
		apiKey:  apiKey,
		voiceID: voiceID,
		modelID: elevenLabsDefaultModel,
		client:  &http.Client{Timeout: 90 * time.Second},
	}
}

type elevenLabsRequest struct {
	Text          string                   `json:"text"`
	ModelID       string                   `json:"model_id"`
	LanguageCode  string                   `json:"language_code,omitempty"`
	VoiceSettings *elevenLabsVoiceSettings `json:"voice_settings,omitempty"`
	Speed         *float64                 `json:"speed,omitempty"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style,omitempty"`
	UseSpeakerBoost bool    `json:"use_speaker_boost,omitempty"`
}

// GenerateNarration converts story text to speech using ElevenLabs.
// Implements the TTSService interface.
func (s *ElevenLabsService) GenerateNarration(ctx context.Context, text, language, voiceStyle string) ([]byte, error) {
	setting, ok := voiceStyleSettings[voiceStyle]
	if !ok {
		setting = voiceStyleSettings["storyteller"]
	}

	reqBody := elevenLabsRequest{
		Text:         sanitizeNarrationText(text),
		ModelID:      s.modelID,
		LanguageCode: languageCode(language),
		Speed:        &setting.speed,
		VoiceSettings: &elevenLabsVoiceSettings{
			Stability:       setting.stability,
			SimilarityBoost: 0.80, // High voice consistency
			Style:           setting.style,
			UseSpeakerBoost: true,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ElevenLabs request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s?output_format=%s",
		elevenLabsBaseURL, s.voiceID, elevenLabsOutputFormat)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create ElevenLabs request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	log.Printf("[ElevenLabs] Generating narration (voiceID=%s, lang=%s, style=%s, textLen=%d)",
		s.voiceID, languageCode(language), voiceStyle, len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ElevenLabs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ElevenLabs returned status %d: %s", resp.StatusCode, string(body))
	}

	// The response body IS the audio file.
	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read ElevenLabs audio response: %w", err)
	}
	if len(audioData) == 0 {
		return nil, fmt.Errorf("ElevenLabs returned empty audio")
	}

	log.Printf("[ElevenLabs] Narration generated (%d bytes)", len(audioData))
	return audioData, nil
}
