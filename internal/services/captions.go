package services

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// ---------------------------------------------------------------------------
// Caption timing synthesis
//
// Turns story text into a sequence of timed caption segments approximating
// natural narration pace, then serializes them as an SRT file for ffmpeg's
// subtitles filter. Timing is derived purely from word counts — no speech
// alignment — so the segments are rescaled to fit inside the video if the
// estimate overruns.
// ---------------------------------------------------------------------------

const (
	// Readability bound — captions show at most this many words at once.
	captionMaxWords = 8

	// ~150 words per minute, a typical narration pace.
	captionWordsPerSecond = 2.5

	// Every segment stays on screen at least this long.
	captionMinSegmentSec = 1.5

	// Lead-in before the first segment and gap between segments.
	captionLeadInSec = 0.5
	captionGapSec    = 0.2

	// Captions must end at least this long before the video does.
	captionTailMarginSec = 1.0

	// Display wrap width; does not affect timing.
	captionWrapWidth = 45
)

// CaptionSegment is one timed span of on-screen text. Start and End are
// seconds from the beginning of the video, Start < End, and segments
// produced by SynthesizeCaptions never overlap.
type CaptionSegment struct {
	Text  string
	Start float64
	End   float64
}

// SynthesizeCaptions converts story text into caption segments bounded by
// targetDuration. Returns an empty slice for degenerate input; the caller
// is expected to disable captioning in that case.
func SynthesizeCaptions(storyText string, targetDuration float64) []CaptionSegment {
	var texts []string
	for _, sentence := range splitSentences(storyText) {
		words := strings.Fields(sentence)
		for i := 0; i < len(words); i += captionMaxWords {
			end := i + captionMaxWords
			if end > len(words) {
				end = len(words)
			}
			if chunk := strings.Join(words[i:end], " "); chunk != "" {
				texts = append(texts, chunk)
			}
		}
	}

	if len(texts) == 0 {
		return nil
	}

	// Provisional left-to-right timings from word counts.
	segments := make([]CaptionSegment, 0, len(texts))
	current := captionLeadInSec
	for _, text := range texts {
		wordCount := float64(len(strings.Fields(text)))
		duration := wordCount / captionWordsPerSecond
		if duration < captionMinSegmentSec {
			duration = captionMinSegmentSec
		}
		segments = append(segments, CaptionSegment{
			Text:  text,
			Start: current,
			End:   current + duration,
		})
		current += duration + captionGapSec
	}

	// Rescale uniformly so captions never run into the video's final second.
	lastEnd := segments[len(segments)-1].End
	if lastEnd > targetDuration-captionTailMarginSec {
		scale := (targetDuration - captionTailMarginSec) / lastEnd
		for i := range segments {
			segments[i].Start *= scale
			segments[i].End *= scale
		}
	}

	return segments
}

// splitSentences splits text on sentence-terminal punctuation followed by
// whitespace. The trailing fragment (no terminal punctuation) is kept.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// WriteSRT serializes caption segments as a SubRip file: sequence number,
// timing line, wrapped text, blank separator.
func WriteSRT(segments []CaptionSegment, outputPath string) error {
	if len(segments) == 0 {
		return fmt.Errorf("no caption segments to write")
	}

	var sb strings.Builder
	for i, seg := range segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatSRTTime(seg.Start), formatSRTTime(seg.End)))
		sb.WriteString(wrapText(seg.Text, captionWrapWidth))
		sb.WriteString("\n\n")
	}

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write SRT file: %w", err)
	}
	return nil
}

// formatSRTTime converts seconds to the SRT timestamp format HH:MM:SS,mmm.
func formatSRTTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	millis := int((seconds - float64(total)) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// wrapText greedily wraps text at the given column width, one word per
// break point. Words longer than the width stay on their own line.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= width {
			line += " " + word
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	lines = append(lines, line)

	return strings.Join(lines, "\n")
}
