package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/dvnsh5/kathachitra/internal/config"
	"github.com/dvnsh5/kathachitra/internal/models"
	"github.com/dvnsh5/kathachitra/internal/services"
	"github.com/dvnsh5/kathachitra/internal/workspace"
)

const apiVersion = "2.2.0"

type Handler struct {
	workspaces *workspace.Manager
	composer   *services.VideoComposer
	story      []services.StoryService // tried in order; empty = not configured
	tts        []services.TTSService   // tried in order; empty = silent videos
}

func NewHandler(workspaces *workspace.Manager, composer *services.VideoComposer, story []services.StoryService, tts []services.TTSService) *Handler {
	return &Handler{
		workspaces: workspaces,
		composer:   composer,
		story:      story,
		tts:        tts,
	}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if len(h.story) == 0 {
		status = "degraded"
	}

	respondJSON(w, http.StatusOK, models.HealthResponse{
		Status:             status,
		Version:            apiVersion,
		StoryConfigured:    len(h.story) > 0,
		SupportedCultures:  config.SupportedCultures,
		SupportedLanguages: config.SupportedLanguages,
		StoryThemes:        config.StoryThemes,
	})
}

// GenerateStory handles POST /generate
func (h *Handler) GenerateStory(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Culture == "" || req.Language == "" || req.Theme == "" {
		respondError(w, http.StatusBadRequest, "culture, language and theme are required")
		return
	}

	if len(h.story) == 0 {
		respondError(w, http.StatusServiceUnavailable, "No story backend configured")
		return
	}

	var story *models.Story
	var err error
	for _, provider := range h.story {
		story, err = provider.GenerateStory(r.Context(), req.Culture, req.Language, req.Theme)
		if err == nil {
			break
		}
		log.Printf("[API] Story provider failed: %v", err)
	}
	if story == nil {
		respondError(w, http.StatusInternalServerError, "Story generation failed")
		return
	}

	resp := models.GenerateResponse{
		Title:     story.Title,
		Culture:   req.Culture,
		Language:  req.Language,
		StoryText: story.StoryText,
	}
	if story.Moral != "" {
		resp.Moral = &story.Moral
	}
	respondJSON(w, http.StatusOK, resp)
}

// GenerateVideo handles POST /generate-video. It allocates a workspace,
// generates narration (best-effort), composes the video, streams it back,
// and destroys the workspace on every exit path.
func (h *Handler) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req models.VideoGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.StoryText == "" {
		respondError(w, http.StatusBadRequest, "Story text required")
		return
	}
	if req.VideoImage == "" {
		respondError(w, http.StatusBadRequest, "Video image required")
		return
	}

	voiceStyle := req.VoiceStyle
	if voiceStyle == "" {
		voiceStyle = "storyteller"
	}

	ws, err := h.workspaces.Create()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to allocate workspace")
		return
	}
	defer h.workspaces.Destroy(ws)

	// Narration is best-effort: if every TTS provider fails the video is
	// composed silent with the default timeline.
	audioPath := ""
	for _, provider := range h.tts {
		audio, err := provider.GenerateNarration(r.Context(), req.StoryText, req.Language, voiceStyle)
		if err != nil {
			log.Printf("[API] TTS provider failed: %v", err)
			continue
		}
		path, err := h.workspaces.WriteAsset(ws, workspace.AssetAudio, audio)
		if err != nil {
			log.Printf("[API] Failed to persist narration: %v", err)
			continue
		}
		audioPath = path
		break
	}

	outputPath, err := h.composer.Compose(r.Context(), ws, req.VideoImage, audioPath, req.StoryText, req.EnableCaptions)
	if err != nil {
		var assetErr *services.AssetError
		if errors.As(err, &assetErr) {
			respondError(w, http.StatusBadRequest, "Invalid image payload")
			return
		}
		log.Printf("[API] Video composition failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Video generation failed")
		return
	}

	h.streamVideo(w, outputPath, req.Title)
}

// streamVideo writes the finished MP4 to the response as a download.
func (h *Handler) streamVideo(w http.ResponseWriter, path, title string) {
	f, err := os.Open(path)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read video")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read video")
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_story.mp4"`, sanitizeTitle(title)))

	if _, err := io.Copy(w, f); err != nil {
		// Headers already sent; nothing to do but log.
		log.Printf("[API] Video stream interrupted: %v", err)
	}
}

// sanitizeTitle reduces a story title to a safe ASCII filename stem.
func sanitizeTitle(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if r > 127 {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	s := strings.TrimSpace(sb.String())
	if len(s) > 50 {
		s = s[:50]
	}
	if s == "" {
		return "cultural_story"
	}
	return s
}

// ListCultures handles GET /cultures
func (h *Handler) ListCultures(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"cultures": config.SupportedCultures})
}

// ListLanguages handles GET /languages
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"languages": config.SupportedLanguages})
}

// ListThemes handles GET /themes
func (h *Handler) ListThemes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"themes": config.StoryThemes})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
