package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dvnsh5/kathachitra/internal/api"
	"github.com/dvnsh5/kathachitra/internal/config"
	"github.com/dvnsh5/kathachitra/internal/services"
	"github.com/dvnsh5/kathachitra/internal/workspace"
)

func main() {
	log.Println("Starting KathaChitra API...")

	cfg := config.Load()

	// Workspace manager + background sweeper for orphaned sessions
	workspaces, err := workspace.NewManager(cfg.TempDir)
	if err != nil {
		log.Fatalf("Failed to initialize workspaces: %v", err)
	}
	sweeper := workspace.NewSweeper(workspaces, cfg.MaxWorkspaceAge, cfg.SweepInterval)

	// Video composition engine
	ffmpegSvc := services.NewFFmpegService()
	composer := services.NewVideoComposer(ffmpegSvc)

	// Story backends — Gemini preferred, Groq as fallback
	var storyProviders []services.StoryService
	if cfg.GeminiKey != "" {
		storyProviders = append(storyProviders, services.NewGeminiService(cfg.GeminiKey))
		log.Println("Story provider: Gemini")
	}
	if cfg.GroqKey != "" {
		storyProviders = append(storyProviders, services.NewGroqService(cfg.GroqKey, cfg.GroqModel))
		log.Println("Story provider: Groq (fallback)")
	}
	if len(storyProviders) == 0 {
		log.Println("WARNING: No story backend configured — /generate will return 503")
	}

	// TTS providers — ElevenLabs preferred, Google Translate TTS as the
	// keyless fallback
	var ttsProviders []services.TTSService
	if cfg.ElevenLabsKey != "" {
		ttsProviders = append(ttsProviders, services.NewElevenLabsService(cfg.ElevenLabsKey, cfg.ElevenLabsVoiceID))
		log.Printf("TTS provider: ElevenLabs (voice: %s)", cfg.ElevenLabsVoiceID)
	}
	ttsProviders = append(ttsProviders, services.NewGTTSService())

	handler := api.NewHandler(workspaces, composer, storyProviders, ttsProviders)
	router := api.NewRouter(handler, api.RouterConfig{
		BackendAPIKey:      cfg.BackendAPIKey,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
	})

	if cfg.BackendAPIKey != "" {
		log.Println("API key authentication enabled")
	} else {
		log.Println("WARNING: No BACKEND_API_KEY set — API is unprotected (dev mode)")
	}

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("API server listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sweeper.Run(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server exited")
}
