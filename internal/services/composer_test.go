package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/dvnsh5/kathachitra/internal/workspace"
)

// testImageB64 renders a small PNG and returns it base64-encoded, the same
// shape the API receives from clients.
func testImageB64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func testWorkspace(t *testing.T) (*workspace.Manager, workspace.Workspace) {
	t.Helper()
	m, err := workspace.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create workspace manager: %v", err)
	}
	ws, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}
	return m, ws
}

func TestComposeRejectsCorruptBase64(t *testing.T) {
	m, ws := testWorkspace(t)
	composer := NewVideoComposer(newUnrunnableFFmpegService())

	_, err := composer.Compose(context.Background(), ws, "not!valid!base64!", "", "A story.", false)
	if err == nil {
		t.Fatal("expected compose to reject corrupt base64")
	}

	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("error is %T, want *AssetError", err)
	}

	// A bad payload fails before any asset is persisted, and the workspace
	// remains destroyable.
	if _, err := os.Stat(ws.Path(workspace.AssetImage)); !os.IsNotExist(err) {
		t.Error("image asset exists despite decode failure")
	}
	m.Destroy(ws)
}

func TestComposeRejectsNonImagePayload(t *testing.T) {
	_, ws := testWorkspace(t)
	composer := NewVideoComposer(newUnrunnableFFmpegService())

	payload := base64.StdEncoding.EncodeToString([]byte("plain text, not a raster image"))
	_, err := composer.Compose(context.Background(), ws, payload, "", "A story.", false)

	var assetErr *AssetError
	if !errors.As(err, &assetErr) {
		t.Fatalf("error is %T, want *AssetError", err)
	}
}

func TestComposeSurfacesEncodeFailure(t *testing.T) {
	_, ws := testWorkspace(t)
	composer := NewVideoComposer(newUnrunnableFFmpegService())

	story := "Long ago a clever fox lived by the river. It outwitted every hunter in the valley."
	_, err := composer.Compose(context.Background(), ws, testImageB64(t), "", story, true)
	if err == nil {
		t.Fatal("expected compose to fail when the encoder is unrunnable")
	}

	var encErr *EncodeError
	if !errors.As(err, &encErr) {
		t.Fatalf("error is %T, want *EncodeError", err)
	}

	// The intermediate assets were still produced before the encoder ran.
	if _, err := os.Stat(ws.Path(workspace.AssetImage)); err != nil {
		t.Errorf("image asset missing: %v", err)
	}
	if _, err := os.Stat(ws.Path(workspace.AssetCaptions)); err != nil {
		t.Errorf("captions asset missing: %v", err)
	}
}

func TestComposeDisablesCaptionsForDegenerateText(t *testing.T) {
	_, ws := testWorkspace(t)
	composer := NewVideoComposer(newUnrunnableFFmpegService())

	// Whitespace-only story text produces no segments; captioning is
	// silently disabled and no SRT asset appears.
	_, err := composer.Compose(context.Background(), ws, testImageB64(t), "", "   ", true)
	if err == nil {
		t.Fatal("expected encode failure from unrunnable binary")
	}
	if _, err := os.Stat(ws.Path(workspace.AssetCaptions)); !os.IsNotExist(err) {
		t.Error("captions asset written despite degenerate story text")
	}
}
