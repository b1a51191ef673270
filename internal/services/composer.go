package services

import (
	"context"
	"log"

	"github.com/dvnsh5/kathachitra/internal/workspace"
)

// ---------------------------------------------------------------------------
// VideoComposer — the end-to-end "image + audio + text → video" operation.
//
// Only two failures ever escape: an undecodable image (*AssetError) and
// exhaustion of every encoder tier (*EncodeError). Probe and caption
// failures degrade silently to a best-effort output. The composer never
// destroys the workspace — that belongs to the request that owns it.
// ---------------------------------------------------------------------------

type VideoComposer struct {
	ffmpeg *FFmpegService
}

func NewVideoComposer(ffmpeg *FFmpegService) *VideoComposer {
	return &VideoComposer{ffmpeg: ffmpeg}
}

// Compose builds the story video inside the given workspace and returns
// the output asset path. audioPath may be empty (silent video, default
// timeline). The image is decoded before any subprocess runs, so a bad
// payload never costs an encoder invocation.
func (c *VideoComposer) Compose(ctx context.Context, ws workspace.Workspace, imageB64, audioPath, storyText string, enableCaptions bool) (string, error) {
	imagePath := ws.Path(workspace.AssetImage)
	if err := decodeAndPersistImage(imageB64, imagePath); err != nil {
		return "", err
	}

	duration := c.ffmpeg.ResolveTimeline(ctx, audioPath)
	log.Printf("[Composer] Creating video: %.1fs, captions=%v", duration, enableCaptions)

	// Captions are best-effort: degenerate text or a failed SRT write just
	// disables them for this request.
	captionsPath := ""
	if enableCaptions && storyText != "" {
		segments := SynthesizeCaptions(storyText, duration)
		if len(segments) == 0 {
			log.Println("[Composer] No caption segments produced, captioning disabled")
		} else if err := WriteSRT(segments, ws.Path(workspace.AssetCaptions)); err != nil {
			log.Printf("[Composer] Caption write failed, captioning disabled: %v", err)
		} else {
			captionsPath = ws.Path(workspace.AssetCaptions)
			log.Printf("[Composer] Created captions: %d segments, synced to %.1fs", len(segments), duration)
		}
	}

	return c.ffmpeg.Encode(ctx, EncodeRequest{
		ImagePath:    imagePath,
		AudioPath:    audioPath,
		CaptionsPath: captionsPath,
		OutputPath:   ws.Path(workspace.AssetOutput),
		Duration:     duration,
	})
}
