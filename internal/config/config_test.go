package config

import (
	"errors"
	"testing"
	"time"
)

func clearAnalyzerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ANALYZER_BACKEND", "ANALYZER_MAX_TEXT_LENGTH", "ANALYZER_DEBOUNCE_MS",
		"ANALYZER_BACKEND_TIMEOUT_MS", "EMOTION_SERVICE_URL", "ARK_API_KEY", "Model",
		"ARK_TEMPERATURE", "ARK_TOP_P", "ARK_MAX_TOKENS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearAnalyzerEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Analyzer.Backend != BackendKeyword {
		t.Fatalf("expected keyword backend, got %s", cfg.Analyzer.Backend)
	}
	if cfg.Analyzer.MaxTextLength != 1000 {
		t.Fatalf("expected max length 1000, got %d", cfg.Analyzer.MaxTextLength)
	}
	if cfg.Analyzer.Debounce != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %s", cfg.Analyzer.Debounce)
	}
	if cfg.AI.Enabled() {
		t.Fatal("expected AI disabled without credentials")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearAnalyzerEnv(t)
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("ANALYZER_BACKEND", "Remote")
	t.Setenv("EMOTION_SERVICE_URL", "http://emotion.local")
	t.Setenv("ANALYZER_MAX_TEXT_LENGTH", "280")
	t.Setenv("ANALYZER_DEBOUNCE_MS", "0")
	t.Setenv("ANALYZER_BACKEND_TIMEOUT_MS", "1500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.Analyzer.Backend != BackendRemote || cfg.Analyzer.RemoteURL != "http://emotion.local" {
		t.Fatalf("unexpected backend config %+v", cfg.Analyzer)
	}
	if cfg.Analyzer.MaxTextLength != 280 {
		t.Fatalf("expected 280, got %d", cfg.Analyzer.MaxTextLength)
	}
	if cfg.Analyzer.Debounce != 0 {
		t.Fatalf("expected zero debounce, got %s", cfg.Analyzer.Debounce)
	}
	if cfg.Analyzer.BackendTimeout != 1500*time.Millisecond {
		t.Fatalf("unexpected timeout %s", cfg.Analyzer.BackendTimeout)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearAnalyzerEnv(t)
	t.Setenv("ANALYZER_BACKEND", "oracle")

	_, err := Load()
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	clearAnalyzerEnv(t)
	t.Setenv("ANALYZER_DEBOUNCE_MS", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid debounce")
	}

	t.Setenv("ANALYZER_DEBOUNCE_MS", "")
	t.Setenv("ANALYZER_MAX_TEXT_LENGTH", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-positive max length")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	if (AIConfig{APIKey: "key"}).Enabled() {
		t.Fatal("model is required")
	}
	if !(AIConfig{APIKey: "key", Model: "doubao"}).Enabled() {
		t.Fatal("api key + model should enable AI")
	}
	if !(AIConfig{AccessKey: "ak", SecretKey: "sk", Model: "doubao"}).Enabled() {
		t.Fatal("ak/sk + model should enable AI")
	}
}
