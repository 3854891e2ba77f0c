package analyze

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/moodlens/backend/internal/analysis/emotion"
	analysismodel "github.com/zhouzirui/moodlens/backend/internal/model/analysis"
	emotionservice "github.com/zhouzirui/moodlens/backend/internal/service/emotion"
)

func setupRouter(maxLength int) *chi.Mux {
	handler := New(emotionservice.NewService(nil, emotionservice.Config{}), maxLength)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func postAnalyze(t *testing.T, r http.Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeReturnsEmotion(t *testing.T) {
	r := setupRouter(1000)
	payload, _ := json.Marshal(map[string]string{"text": "This traffic is making me so frustrated"})

	resp := postAnalyze(t, r, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got analysismodel.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Emotion != emotion.Angry {
		t.Fatalf("expected angry, got %s", got.Emotion)
	}
	if got.Emoji != emotion.Emoji(emotion.Angry) || got.Color != emotion.Color(emotion.Angry) {
		t.Fatalf("unexpected display fields: %+v", got)
	}
	if got.ID == "" || got.Source != emotionservice.SourceKeyword {
		t.Fatalf("unexpected metadata: id=%q source=%q", got.ID, got.Source)
	}
	if len(got.Scores) != len(emotion.Labels()) {
		t.Fatalf("expected %d scores, got %d", len(emotion.Labels()), len(got.Scores))
	}
}

func TestAnalyzeEmptyTextIsNeutral(t *testing.T) {
	r := setupRouter(1000)

	resp := postAnalyze(t, r, []byte(`{"text": ""}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got analysismodel.AnalyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if got.Emotion != emotion.Neutral || got.Confidence != 0 {
		t.Fatalf("expected neutral/0, got %s/%v", got.Emotion, got.Confidence)
	}
}

func TestAnalyzeInvalidBody(t *testing.T) {
	r := setupRouter(1000)

	resp := postAnalyze(t, r, []byte(`{"text":`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeTextTooLong(t *testing.T) {
	r := setupRouter(10)
	payload, _ := json.Marshal(map[string]string{"text": strings.Repeat("a", 11)})

	resp := postAnalyze(t, r, payload)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestLegendListsEveryEmotion(t *testing.T) {
	r := setupRouter(1000)
	req := httptest.NewRequest(http.MethodGet, "/emotions", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var entries []analysismodel.LegendEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	labels := emotion.Labels()
	if len(entries) != len(labels) {
		t.Fatalf("expected %d entries, got %d", len(labels), len(entries))
	}
	for i, entry := range entries {
		if entry.Emotion != labels[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, labels[i], entry.Emotion)
		}
	}
}

func TestHealthReportsBackend(t *testing.T) {
	r := setupRouter(1000)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if body["backend"] != emotionservice.SourceKeyword {
		t.Fatalf("expected keyword backend, got %q", body["backend"])
	}
}
