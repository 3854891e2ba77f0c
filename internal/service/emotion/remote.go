package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	analysis "github.com/zhouzirui/moodlens/backend/internal/analysis/emotion"
)

// RemoteBackend 调用外部情绪分析 HTTP 服务。
type RemoteBackend struct {
	baseURL string
	http    *http.Client
}

// NewRemoteBackend creates a client for an emotion service at baseURL.
func NewRemoteBackend(baseURL string, timeout time.Duration) *RemoteBackend {
	if timeout <= 0 {
		timeout = 1500 * time.Millisecond
	}
	return &RemoteBackend{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Name implements Backend.
func (c *RemoteBackend) Name() string {
	return "remote"
}

// Classify implements Backend.
func (c *RemoteBackend) Classify(ctx context.Context, text string) (analysis.Result, error) {
	if c.baseURL == "" {
		return analysis.Result{}, fmt.Errorf("emotion service is not configured")
	}

	body, err := json.Marshal(map[string]string{"text": strings.TrimSpace(text)})
	if err != nil {
		return analysis.Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/emotion/analyze", bytes.NewReader(body))
	if err != nil {
		return analysis.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return analysis.Result{}, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return analysis.Result{}, fmt.Errorf("emotion service status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out struct {
		Emotion    string  `json:"emotion"`
		Confidence float64 `json:"confidence"`
		Intensity  float64 `json:"intensity"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return analysis.Result{}, err
	}

	label, ok := analysis.Parse(out.Emotion)
	if !ok {
		return analysis.Result{}, fmt.Errorf("unsupported emotion label %q", out.Emotion)
	}

	confidence := out.Confidence
	if confidence == 0 {
		confidence = out.Intensity
	}

	return analysis.Result{
		Emotion:    label,
		Confidence: clampConfidence(confidence),
		Scores:     analysis.Score(text),
	}, nil
}
