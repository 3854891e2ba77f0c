package emotion

import (
	"context"
	"errors"
	"fmt"

	"github.com/zhouzirui/moodlens/backend/internal/config"
)

var (
	// ErrArkNotConfigured 表示选择了 llm 后端但缺少 Ark 凭证。
	ErrArkNotConfigured = errors.New("ark credentials not configured")
	// ErrRemoteURLMissing 表示选择了 remote 后端但未设置 EMOTION_SERVICE_URL。
	ErrRemoteURLMissing = errors.New("EMOTION_SERVICE_URL not configured")
)

// NewBackend 按 ANALYZER_BACKEND 创建情绪分析后端。keyword 返回 (nil, nil)，
// 调用方在出错时应退回关键词引擎。
func NewBackend(ctx context.Context, analyzerCfg config.AnalyzerConfig, aiCfg config.AIConfig) (Backend, error) {
	switch analyzerCfg.Backend {
	case config.BackendLLM:
		if !aiCfg.Enabled() {
			return nil, ErrArkNotConfigured
		}
		chatModel, err := aiCfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("init chat model: %w", err)
		}
		backend, err := NewLLMBackend(ctx, chatModel)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case config.BackendRemote:
		if analyzerCfg.RemoteURL == "" {
			return nil, ErrRemoteURLMissing
		}
		return NewRemoteBackend(analyzerCfg.RemoteURL, analyzerCfg.BackendTimeout), nil
	case config.BackendKeyword, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, analyzerCfg.Backend)
	}
}
