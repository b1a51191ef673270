package services

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Audio duration probing
//
// The narration length decides the video timeline. ffprobe gives the real
// container duration; when it is unavailable (missing binary, bad exit,
// garbage output) we estimate from the file size instead, and when even
// that fails the caller falls back to a fixed default.
// ---------------------------------------------------------------------------

const (
	// assumedAudioBytesPerSec is the divisor for the size-based estimate:
	// ~128 kbit/s MP3 ≈ 16000 bytes per second. This is an approximation,
	// not a measurement — ffprobe is always preferred.
	assumedAudioBytesPerSec = 16000

	probeTimeout = 30 * time.Second

	// Timeline policy.
	defaultDurationSec     = 30.0
	durationPaddingSec     = 2.0
	durationSanityFloorSec = 5.0
)

// ProbeAudioDuration returns the playback length of an audio file in
// seconds. The second return is false when neither ffprobe nor the
// size-based estimate produced a value. Probe failures are soft: they are
// logged and recovered, never returned.
func (s *FFmpegService) ProbeAudioDuration(ctx context.Context, audioPath string) (float64, bool) {
	if d, ok := s.probeWithFFprobe(ctx, audioPath); ok {
		return d, true
	}

	// Fallback: estimate from file size at an assumed average bitrate.
	info, err := os.Stat(audioPath)
	if err != nil {
		log.Printf("[Probe] Duration unavailable for %s: %v", audioPath, err)
		return 0, false
	}
	estimate := float64(info.Size()) / assumedAudioBytesPerSec
	log.Printf("[Probe] Estimated duration from size: %.1fs (%d bytes)", estimate, info.Size())
	return estimate, true
}

func (s *FFmpegService) probeWithFFprobe(ctx context.Context, audioPath string) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		audioPath,
	}

	output, err := s.runProbe(ctx, args)
	if err != nil {
		log.Printf("[Probe] ffprobe failed for %s: %v", audioPath, err)
		return 0, false
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		log.Printf("[Probe] ffprobe returned unparseable duration %q", output)
		return 0, false
	}
	return duration, true
}

// ResolveTimeline computes the target video duration from the (optional)
// narration asset: probed duration plus padding when the probe looks sane,
// otherwise the fixed default. A probe below the sanity floor is treated
// as unreliable and replaced by the default.
func (s *FFmpegService) ResolveTimeline(ctx context.Context, audioPath string) float64 {
	if audioPath == "" {
		return defaultDurationSec
	}

	duration, ok := s.ProbeAudioDuration(ctx, audioPath)
	if !ok || duration < durationSanityFloorSec {
		duration = defaultDurationSec
	}
	return duration + durationPaddingSec
}
