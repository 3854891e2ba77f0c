package emotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zhouzirui/moodlens/backend/internal/config"
)

func TestNewBackendKeywordReturnsNil(t *testing.T) {
	backend, err := NewBackend(context.Background(), config.AnalyzerConfig{Backend: config.BackendKeyword}, config.AIConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend != nil {
		t.Fatalf("expected nil backend, got %T", backend)
	}
}

func TestNewBackendLLMRequiresArk(t *testing.T) {
	_, err := NewBackend(context.Background(), config.AnalyzerConfig{Backend: config.BackendLLM}, config.AIConfig{})
	if !errors.Is(err, ErrArkNotConfigured) {
		t.Fatalf("expected ErrArkNotConfigured, got %v", err)
	}
}

func TestNewBackendRemote(t *testing.T) {
	_, err := NewBackend(context.Background(), config.AnalyzerConfig{Backend: config.BackendRemote}, config.AIConfig{})
	if !errors.Is(err, ErrRemoteURLMissing) {
		t.Fatalf("expected ErrRemoteURLMissing, got %v", err)
	}

	backend, err := NewBackend(context.Background(), config.AnalyzerConfig{
		Backend:        config.BackendRemote,
		RemoteURL:      "http://127.0.0.1:9",
		BackendTimeout: time.Second,
	}, config.AIConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.Name() != "remote" {
		t.Fatalf("expected remote backend, got %q", backend.Name())
	}
}

func TestNewBackendUnknown(t *testing.T) {
	_, err := NewBackend(context.Background(), config.AnalyzerConfig{Backend: "bert"}, config.AIConfig{})
	if !errors.Is(err, config.ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}
