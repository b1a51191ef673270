package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Google Translate Text-to-Speech Service
// Keyless fallback narration provider using the public translate_tts
// endpoint. Quality is below ElevenLabs and voice styles are ignored, but
// it needs no credentials, so narration still works in an unconfigured
// deployment. The endpoint caps input length, so text is synthesized
// sentence-by-sentence and the MP3 payloads concatenated.
// ---------------------------------------------------------------------------

const (
	gttsBaseURL = "https://translate.google.com/translate_tts"

	// Maximum characters the endpoint reliably accepts per request.
	gttsMaxChunkLen = 200
)

// GTTSService handles text-to-speech via Google Translate.
type GTTSService struct {
	client *http.Client
}

// Ensure GTTSService implements TTSService at compile time.
var _ TTSService = (*GTTSService)(nil)

func NewGTTSService() *GTTSService {
	return &GTTSService{
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// GenerateNarration converts story text to speech using Google Translate
// TTS. voiceStyle is accepted for interface compatibility but has no
// effect — the endpoint offers a single voice per language.
func (s *GTTSService) GenerateNarration(ctx context.Context, text, language, voiceStyle string) ([]byte, error) {
	lang := languageCode(language)
	chunks := chunkForTTS(sanitizeNarrationText(text), gttsMaxChunkLen)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no narratable text")
	}

	log.Printf("[gTTS] Generating narration (lang=%s, chunks=%d)", lang, len(chunks))

	var audio []byte
	for i, chunk := range chunks {
		data, err := s.fetchChunk(ctx, chunk, lang)
		if err != nil {
			return nil, fmt.Errorf("gTTS chunk %d/%d failed: %w", i+1, len(chunks), err)
		}
		audio = append(audio, data...)
	}

	if len(audio) == 0 {
		return nil, fmt.Errorf("gTTS returned empty audio")
	}

	log.Printf("[gTTS] Narration generated (%d bytes)", len(audio))
	return audio, nil
}

func (s *GTTSService) fetchChunk(ctx context.Context, text, lang string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", lang)
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, "GET", gttsBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gTTS request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gTTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gTTS returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// chunkForTTS groups sentences into request-sized chunks, splitting
// oversized sentences on word boundaries.
func chunkForTTS(text string, maxLen int) []string {
	var chunks []string
	current := ""

	flush := func() {
		if current != "" {
			chunks = append(chunks, current)
			current = ""
		}
	}

	for _, sentence := range splitSentences(text) {
		if len(sentence) > maxLen {
			flush()
			for _, word := range strings.Fields(sentence) {
				if current == "" {
					current = word
				} else if len(current)+1+len(word) <= maxLen {
					current += " " + word
				} else {
					flush()
					current = word
				}
			}
			flush()
			continue
		}

		if current == "" {
			current = sentence
		} else if len(current)+1+len(sentence) <= maxLen {
			current += " " + sentence
		} else {
			flush()
			current = sentence
		}
	}
	flush()

	return chunks
}
