package services

import (
	"strings"
	"testing"
)

func TestLanguageCode(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"Hindi", "hi"},
		{"BENGALI", "bn"},
		{"french", "fr"},
		{"Klingon", "en"},
		{"", "en"},
	}

	for _, tt := range tests {
		if got := languageCode(tt.language); got != tt.want {
			t.Errorf("languageCode(%q) = %q, want %q", tt.language, got, tt.want)
		}
	}
}

func TestSanitizeNarrationText(t *testing.T) {
	in := "“Don’t stop” — she said… now"
	want := `"Don't stop" - she said... now`
	if got := sanitizeNarrationText(in); got != want {
		t.Errorf("sanitizeNarrationText = %q, want %q", got, want)
	}
}

func TestChunkForTTS(t *testing.T) {
	if chunks := chunkForTTS("", 200); len(chunks) != 0 {
		t.Errorf("empty text produced %d chunks", len(chunks))
	}

	// Short sentences get grouped into one chunk.
	chunks := chunkForTTS("One. Two. Three.", 200)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %v", len(chunks), chunks)
	}
	if chunks[0] != "One. Two. Three." {
		t.Errorf("chunk = %q", chunks[0])
	}

	// Sentences that do not fit together are split apart.
	chunks = chunkForTTS("First sentence here. Second sentence here.", 25)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2: %v", len(chunks), chunks)
	}

	// An oversized sentence splits on word boundaries, never mid-word.
	long := "alpha beta gamma delta epsilon zeta eta theta"
	for _, chunk := range chunkForTTS(long, 20) {
		if len(chunk) > 20 {
			t.Errorf("chunk exceeds limit: %q (%d chars)", chunk, len(chunk))
		}
		for _, word := range strings.Fields(chunk) {
			if !strings.Contains(long, word) {
				t.Errorf("chunk contains mangled word %q", word)
			}
		}
	}
}
