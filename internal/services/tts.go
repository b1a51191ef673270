package services

import (
	"context"
	"strings"
)

// ---------------------------------------------------------------------------
// TTSService — common interface for narration providers
// ElevenLabs (primary) and Google Translate TTS (keyless fallback) both
// implement this interface so the API layer can use whichever is
// configured without knowing the underlying provider.
// ---------------------------------------------------------------------------

// TTSService converts story text into narration audio.
type TTSService interface {
	// GenerateNarration returns MP3 audio for the text. language is a
	// human-readable name ("Hindi", "French"); voiceStyle is one of
	// friendly, professional, storyteller, gentle, energetic.
	GenerateNarration(ctx context.Context, text, language, voiceStyle string) ([]byte, error)
}

// languageCodes maps supported language names to ISO codes used by the
// TTS providers.
var languageCodes = map[string]string{
	"english":    "en",
	"hindi":      "hi",
	"bengali":    "bn",
	"tamil":      "ta",
	"telugu":     "te",
	"kannada":    "kn",
	"punjabi":    "pa",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"russian":    "ru",
}

func languageCode(language string) string {
	if code, ok := languageCodes[strings.ToLower(language)]; ok {
		return code
	}
	return "en"
}

// ttsSanitizer normalizes typographic punctuation that trips up TTS
// engines into plain ASCII equivalents.
var ttsSanitizer = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"–", "-", // en dash
	"—", "-", // em dash
	"…", "...", // ellipsis
	" ", " ", // non-breaking space
	"­", "", // soft hyphen
)

func sanitizeNarrationText(text string) string {
	return ttsSanitizer.Replace(text)
}
