package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/zhouzirui/moodlens/backend/internal/config"
	"github.com/zhouzirui/moodlens/backend/internal/handler"
	emotionservice "github.com/zhouzirui/moodlens/backend/internal/service/emotion"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize emotion analysis service (optional backend with keyword fallback)
	backend, err := emotionservice.NewBackend(ctx, cfg.Analyzer, cfg.AI)
	if err != nil {
		log.Printf("warning: failed to initialize %s emotion backend: %v", cfg.Analyzer.Backend, err)
		log.Println("continuing with keyword engine only")
		backend = nil
	}
	emotionSvc := emotionservice.NewService(backend, emotionservice.Config{
		Timeout: cfg.Analyzer.BackendTimeout,
	})
	if emotionSvc.Enabled() {
		log.Printf("Emotion backend %q enabled, keyword engine kept as fallback", emotionSvc.BackendName())
	} else {
		log.Println("Emotion analysis running on keyword engine only")
	}

	router := handler.NewRouter(emotionSvc, cfg.Analyzer)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("MoodLens backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
