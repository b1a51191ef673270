package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCreateAndDestroy(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	ws, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	info, err := os.Stat(ws.Dir)
	if err != nil {
		t.Fatalf("workspace dir missing: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("workspace is not a directory")
	}

	m.Destroy(ws)
	if _, err := os.Stat(ws.Dir); !os.IsNotExist(err) {
		t.Errorf("workspace dir still exists after destroy")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	ws, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	// Double destroy and destroying a never-created workspace must not
	// panic or error.
	m.Destroy(ws)
	m.Destroy(ws)
	m.Destroy(Workspace{})
}

func TestAssetPaths(t *testing.T) {
	ws := Workspace{Dir: "/tmp/kathachitra/abc"}

	tests := []struct {
		role AssetRole
		want string
	}{
		{AssetImage, "/tmp/kathachitra/abc/story_image.png"},
		{AssetAudio, "/tmp/kathachitra/abc/story_narration.mp3"},
		{AssetCaptions, "/tmp/kathachitra/abc/captions.srt"},
		{AssetOutput, "/tmp/kathachitra/abc/story_video.mp4"},
	}

	for _, tt := range tests {
		if got := ws.Path(tt.role); got != tt.want {
			t.Errorf("Path(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}

func TestWriteAsset(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	ws, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}
	defer m.Destroy(ws)

	path, err := m.WriteAsset(ws, AssetCaptions, []byte("1\n"))
	if err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read asset back: %v", err)
	}
	if string(data) != "1\n" {
		t.Errorf("asset content = %q", data)
	}
}

func TestSweepExpired(t *testing.T) {
	base := t.TempDir()
	m, err := NewManager(base)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	old, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}
	fresh, err := m.Create()
	if err != nil {
		t.Fatalf("failed to create workspace: %v", err)
	}

	// Age the first workspace past the threshold.
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old.Dir, past, past); err != nil {
		t.Fatalf("failed to age workspace: %v", err)
	}

	m.SweepExpired(10 * time.Minute)

	if _, err := os.Stat(old.Dir); !os.IsNotExist(err) {
		t.Error("expired workspace survived sweep")
	}
	if _, err := os.Stat(fresh.Dir); err != nil {
		t.Error("fresh workspace was swept")
	}
}

func TestSweepIgnoresFiles(t *testing.T) {
	base := t.TempDir()
	m, err := NewManager(base)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	// A stray file in the base dir is not a workspace and stays put.
	strayPath := filepath.Join(base, "stray.txt")
	if err := os.WriteFile(strayPath, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write stray file: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(strayPath, past, past); err != nil {
		t.Fatalf("failed to age stray file: %v", err)
	}

	m.SweepExpired(10 * time.Minute)

	if _, err := os.Stat(strayPath); err != nil {
		t.Error("sweep removed a non-directory entry")
	}
}
