package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Encoder invocation pipeline
//
// A still image, an optional narration track, and an optional SRT caption
// file go in; a single H.264 MP4 comes out. Encoding degrades through
// tiers: the full render (scale/pad/zoom + burned-in captions) first, the
// same without captions second, and a bare image+audio mux last. Each tier
// gets a fresh EncodePlan and a bounded subprocess; only when every tier
// fails does the invocation fail as a whole.
// ---------------------------------------------------------------------------

// Output constants — 1024x576 (16:9) at 24fps, tuned for still-image
// narration content. Container/codec settings never vary across tiers.
const (
	frameWidth  = 1024
	frameHeight = 576
	videoFPS    = 24

	audioBitrate = "192k"

	// Per-attempt subprocess bound. A timeout counts as a tier failure.
	encodeTimeout = 300 * time.Second
)

// EncodeTier is one attempt configuration in the degradation chain.
type EncodeTier string

const (
	TierFull       EncodeTier = "full"        // scale+pad+zoom, captions burned in
	TierNoCaptions EncodeTier = "no_captions" // scale+pad+zoom, no caption overlay
	TierMinimal    EncodeTier = "minimal"     // bare image+audio mux, no filters
)

// ---------------------------------------------------------------------------
// Filter descriptors
//
// The filter graph is composed as typed descriptors and serialized to
// ffmpeg's -vf syntax only at the invocation boundary, so the composition
// logic never deals with escaping.
// ---------------------------------------------------------------------------

type videoFilter interface {
	render() string
}

// scaleFilter fits the input inside the frame, preserving aspect ratio.
type scaleFilter struct {
	width, height int
}

func (f scaleFilter) render() string {
	return fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", f.width, f.height)
}

// padFilter centers the scaled input on the canonical frame.
type padFilter struct {
	width, height int
}

func (f padFilter) render() string {
	return fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", f.width, f.height)
}

// zoompanFilter applies a slow centered push-in (max 8% zoom) so the still
// image does not feel frozen.
type zoompanFilter struct {
	width, height, fps int
}

func (f zoompanFilter) render() string {
	return fmt.Sprintf(
		"zoompan=z='min(zoom+0.0003,1.08)':d=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':s=%dx%d:fps=%d",
		f.width, f.height, f.fps,
	)
}

// subtitlesFilter burns an SRT file into the video with a fixed style.
type subtitlesFilter struct {
	path string
}

func (f subtitlesFilter) render() string {
	return fmt.Sprintf(
		"subtitles='%s':force_style='FontSize=22,FontName=DejaVu Sans,PrimaryColour=&HFFFFFF,OutlineColour=&H000000,Outline=2,Shadow=1,MarginV=40'",
		escapeFilterPath(f.path),
	)
}

// escapeFilterPath escapes characters that ffmpeg filter strings treat
// specially (colons, quotes, and backslashes in Windows paths).
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.ReplaceAll(path, ":", "\\:")
	path = strings.ReplaceAll(path, "'", "'\\''")
	return path
}

func renderFilterChain(filters []videoFilter) string {
	parts := make([]string, len(filters))
	for i, f := range filters {
		parts[i] = f.render()
	}
	return strings.Join(parts, ",")
}

// ---------------------------------------------------------------------------
// EncodePlan
// ---------------------------------------------------------------------------

// EncodeRequest carries the assets and timeline for one composition.
// AudioPath and CaptionsPath may be empty.
type EncodeRequest struct {
	ImagePath    string
	AudioPath    string
	CaptionsPath string
	OutputPath   string
	Duration     float64
}

// EncodePlan is the resolved parameters for a single encoder attempt.
// Plans are value objects built fresh for each tier, never mutated across
// attempts.
type EncodePlan struct {
	Tier         EncodeTier
	Filters      []videoFilter
	BurnCaptions bool
}

// buildPlan produces the plan for one tier of the degradation chain.
func buildPlan(req EncodeRequest, tier EncodeTier) EncodePlan {
	plan := EncodePlan{Tier: tier}

	switch tier {
	case TierFull:
		plan.Filters = []videoFilter{
			scaleFilter{frameWidth, frameHeight},
			padFilter{frameWidth, frameHeight},
			zoompanFilter{frameWidth, frameHeight, videoFPS},
			subtitlesFilter{req.CaptionsPath},
		}
		plan.BurnCaptions = true
	case TierNoCaptions:
		plan.Filters = []videoFilter{
			scaleFilter{frameWidth, frameHeight},
			padFilter{frameWidth, frameHeight},
			zoompanFilter{frameWidth, frameHeight, videoFPS},
		}
	case TierMinimal:
		// Bare mux: no filters at all.
	}

	return plan
}

// ---------------------------------------------------------------------------
// FFmpegService
// ---------------------------------------------------------------------------

type FFmpegService struct {
	ffmpegBin  string
	ffprobeBin string
}

func NewFFmpegService() *FFmpegService {
	return &FFmpegService{
		ffmpegBin:  "ffmpeg",
		ffprobeBin: "ffprobe",
	}
}

// Encode runs the tiered degradation chain and returns the output path on
// the first success. The full tier is skipped when no caption file is
// present. Returns an *EncodeError only when every tier has failed.
func (s *FFmpegService) Encode(ctx context.Context, req EncodeRequest) (string, error) {
	tiers := []EncodeTier{TierNoCaptions, TierMinimal}
	if req.CaptionsPath != "" {
		tiers = append([]EncodeTier{TierFull}, tiers...)
	}

	var lastTier EncodeTier
	var lastErr error
	for _, tier := range tiers {
		plan := buildPlan(req, tier)
		log.Printf("[FFmpeg] Encoding tier=%s (captions=%v, audio=%v, duration=%.1fs)",
			tier, plan.BurnCaptions, req.AudioPath != "", req.Duration)

		if err := s.runEncode(ctx, req, plan); err != nil {
			log.Printf("[FFmpeg] Tier %s failed: %v", tier, err)
			lastTier, lastErr = tier, err
			continue
		}
		return req.OutputPath, nil
	}

	return "", &EncodeError{Tier: lastTier, Err: lastErr}
}

// encodeArgs serializes a plan into the ffmpeg argument list. The command
// shape differs between image+audio and image-only inputs: with audio the
// output ends when the shorter stream does, without it the looped image is
// cut at the explicit duration.
func (s *FFmpegService) encodeArgs(req EncodeRequest, plan EncodePlan) []string {
	args := []string{
		"-y",
		"-loop", "1",
		"-i", req.ImagePath,
	}
	if req.AudioPath != "" {
		args = append(args, "-i", req.AudioPath)
	}

	args = append(args,
		"-c:v", "libx264",
		"-tune", "stillimage",
	)
	if req.AudioPath != "" {
		args = append(args, "-c:a", "aac", "-b:a", audioBitrate)
	}
	args = append(args, "-pix_fmt", "yuv420p")

	if req.AudioPath == "" {
		args = append(args, "-t", fmt.Sprintf("%.2f", req.Duration))
	}
	if len(plan.Filters) > 0 {
		args = append(args, "-vf", renderFilterChain(plan.Filters))
	}
	if req.AudioPath != "" {
		args = append(args, "-shortest")
	}

	args = append(args, "-movflags", "+faststart", req.OutputPath)
	return args
}

// runEncode executes one encoder attempt, bounded by encodeTimeout.
// Non-zero exit, missing binary, and timeout are all the same failure to
// the degradation chain.
func (s *FFmpegService) runEncode(ctx context.Context, req EncodeRequest, plan EncodePlan) error {
	ctx, cancel := context.WithTimeout(ctx, encodeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.ffmpegBin, s.encodeArgs(req, plan)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed (tier=%s): %w: %s", plan.Tier, err, truncate(stderr.String(), 500))
	}

	if _, err := os.Stat(req.OutputPath); err != nil {
		return fmt.Errorf("ffmpeg produced no output (tier=%s): %w", plan.Tier, err)
	}
	return nil
}

// runProbe executes ffprobe and returns its stdout.
func (s *FFmpegService) runProbe(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, s.ffprobeBin, args...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("ffprobe failed: %w", err)
	}
	return string(output), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
