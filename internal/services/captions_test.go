package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSynthesizeCaptionsChunking(t *testing.T) {
	// 120 words in a single sentence should chunk into 15 segments of 8.
	words := make([]string, 120)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ") + "."

	segments := SynthesizeCaptions(text, 30.0)

	if len(segments) != 15 {
		t.Fatalf("got %d segments, want 15", len(segments))
	}
	for i, seg := range segments {
		if n := len(strings.Fields(seg.Text)); n > captionMaxWords {
			t.Errorf("segment %d has %d words, max is %d", i, n, captionMaxWords)
		}
		if seg.Start >= seg.End {
			t.Errorf("segment %d has Start %.2f >= End %.2f", i, seg.Start, seg.End)
		}
		if i > 0 && seg.Start < segments[i-1].End {
			t.Errorf("segment %d overlaps previous (%.2f < %.2f)", i, seg.Start, segments[i-1].End)
		}
	}

	first := segments[0]
	if first.Start <= 0 || first.Start > captionLeadInSec {
		t.Errorf("first segment starts at %.2f, want within (0, %.2f]", first.Start, captionLeadInSec)
	}
	last := segments[len(segments)-1]
	if last.End > 30.0-captionTailMarginSec+0.001 {
		t.Errorf("last segment ends at %.2f, must clear the final second of a 30s video", last.End)
	}
}

func TestSynthesizeCaptionsShortText(t *testing.T) {
	// Plenty of room: no rescale, so the literal timing constants apply.
	segments := SynthesizeCaptions("Hello there. Nice to meet you.", 60.0)

	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}
	if segments[0].Start != captionLeadInSec {
		t.Errorf("first start = %.2f, want %.2f", segments[0].Start, captionLeadInSec)
	}
	// Two words at 2.5 wps is under the minimum display time.
	if got := segments[0].End - segments[0].Start; got != captionMinSegmentSec {
		t.Errorf("short segment duration = %.2f, want %.2f", got, captionMinSegmentSec)
	}
	if gap := segments[1].Start - segments[0].End; gap < captionGapSec-0.001 || gap > captionGapSec+0.001 {
		t.Errorf("inter-segment gap = %.2f, want %.2f", gap, captionGapSec)
	}
}

func TestSynthesizeCaptionsDegenerateInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if segments := SynthesizeCaptions(text, 30.0); len(segments) != 0 {
			t.Errorf("SynthesizeCaptions(%q) = %d segments, want 0", text, len(segments))
		}
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"One. Two! Three?", []string{"One.", "Two!", "Three?"}},
		{"No terminal punctuation", []string{"No terminal punctuation"}},
		{"Trailing fragment. still counts", []string{"Trailing fragment.", "still counts"}},
		{"Version 2.5 stays whole.", []string{"Version 2.5 stays whole."}},
		{"", nil},
	}

	for _, tt := range tests {
		got := splitSentences(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitSentences(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitSentences(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFormatSRTTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{0.5, "00:00:00,500"},
		{61.25, "00:01:01,250"},
		{3661.5, "01:01:01,500"},
		{-1, "00:00:00,000"},
	}

	for _, tt := range tests {
		if got := formatSRTTime(tt.seconds); got != tt.want {
			t.Errorf("formatSRTTime(%v) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	if got := wrapText("short line", 45); got != "short line" {
		t.Errorf("short text should not wrap, got %q", got)
	}

	long := "the quick brown fox jumps over the lazy dog near the riverbank at dawn"
	wrapped := wrapText(long, 45)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 45 {
			t.Errorf("wrapped line exceeds width: %q (%d chars)", line, len(line))
		}
	}
	if strings.ReplaceAll(wrapped, "\n", " ") != long {
		t.Error("wrapping changed the text content")
	}

	// A word longer than the width gets its own line rather than being cut.
	oversized := wrapText("tiny supercalifragilisticexpialidocious", 10)
	if !strings.Contains(oversized, "supercalifragilisticexpialidocious") {
		t.Errorf("oversized word was mangled: %q", oversized)
	}
}

func TestWriteSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captions.srt")
	segments := []CaptionSegment{
		{Text: "First caption", Start: 0.5, End: 2.0},
		{Text: "Second caption", Start: 2.2, End: 4.0},
	}

	if err := WriteSRT(segments, path); err != nil {
		t.Fatalf("WriteSRT failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read SRT: %v", err)
	}

	content := string(data)
	want := "1\n00:00:00,500 --> 00:00:02,000\nFirst caption\n\n" +
		"2\n00:00:02,200 --> 00:00:04,000\nSecond caption\n\n"
	if content != want {
		t.Errorf("SRT content mismatch:\ngot:\n%s\nwant:\n%s", content, want)
	}
}

func TestWriteSRTEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "captions.srt")
	if err := WriteSRT(nil, path); err == nil {
		t.Error("WriteSRT with no segments should fail")
	}
}
