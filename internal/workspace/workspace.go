package workspace

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Per-request session workspaces
//
// Every video request gets its own uniquely-named directory under the base
// temp dir. All intermediate assets (image, narration, captions, output)
// live inside it, and the whole directory is removed when the request ends.
// A periodic sweep removes directories orphaned by crashed requests.
// ---------------------------------------------------------------------------

// AssetRole names the one file a workspace holds for each purpose.
type AssetRole string

const (
	AssetImage    AssetRole = "story_image.png"
	AssetAudio    AssetRole = "story_narration.mp3"
	AssetCaptions AssetRole = "captions.srt"
	AssetOutput   AssetRole = "story_video.mp4"
)

// Workspace is an isolated directory owned by a single request.
type Workspace struct {
	ID  uuid.UUID
	Dir string
}

// Path returns the canonical location of an asset role inside the workspace.
func (w Workspace) Path(role AssetRole) string {
	return filepath.Join(w.Dir, string(role))
}

// Manager creates and destroys session workspaces under a base directory.
type Manager struct {
	baseDir string
}

func NewManager(baseDir string) (*Manager, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace base dir: %w", err)
	}
	return &Manager{baseDir: baseDir}, nil
}

// Create allocates a new empty workspace directory.
func (m *Manager) Create() (Workspace, error) {
	id := uuid.New()
	dir := filepath.Join(m.baseDir, id.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Workspace{}, fmt.Errorf("failed to create workspace %s: %w", id, err)
	}
	return Workspace{ID: id, Dir: dir}, nil
}

// WriteAsset writes data to the workspace under the given role.
func (m *Manager) WriteAsset(ws Workspace, role AssetRole, data []byte) (string, error) {
	path := ws.Path(role)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s asset: %w", role, err)
	}
	return path, nil
}

// Destroy removes the workspace and everything in it. It is idempotent:
// destroying a workspace that is already gone (or was never created) is a
// no-op, so callers can invoke it unconditionally on every exit path.
// Failures are logged, never returned.
func (m *Manager) Destroy(ws Workspace) {
	if ws.Dir == "" {
		return
	}
	if err := os.RemoveAll(ws.Dir); err != nil {
		log.Printf("[Workspace] Warning: failed to destroy %s: %v", ws.ID, err)
	}
}

// SweepExpired removes workspaces whose last modification is older than
// maxAge. Safety net for requests that crashed before calling Destroy.
func (m *Manager) SweepExpired(maxAge time.Duration) {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		log.Printf("[Workspace] Warning: sweep failed to read %s: %v", m.baseDir, err)
		return
	}

	now := time.Now()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			dir := filepath.Join(m.baseDir, entry.Name())
			if err := os.RemoveAll(dir); err != nil {
				log.Printf("[Workspace] Warning: sweep failed to remove %s: %v", dir, err)
			} else {
				log.Printf("[Workspace] Swept expired workspace %s", entry.Name())
			}
		}
	}
}
