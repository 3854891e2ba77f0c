package emotion

import (
	"context"
	"log"
	"strings"
	"time"

	analysis "github.com/zhouzirui/moodlens/backend/internal/analysis/emotion"
)

// SourceKeyword 标记结果来自本地关键词引擎。
const SourceKeyword = "keyword"

// Config 控制情绪分析服务的行为。
type Config struct {
	Timeout time.Duration
}

// Backend is a higher-accuracy classifier behind the same contract as the
// keyword engine. Any error it returns is recovered by the service.
type Backend interface {
	Name() string
	Classify(ctx context.Context, text string) (analysis.Result, error)
}

// Outcome 表示一次情绪分析的结果及其来源。
type Outcome struct {
	Result analysis.Result
	Source string
	// Reason 是后端给出的解释；回退到关键词引擎时为 "fallback"。
	Reason string
}

// Service 优先使用配置的后端进行分析，失败时回退到关键词规则。
type Service struct {
	backend  Backend
	fallback func(text string) analysis.Result
	timeout  time.Duration
}

// NewService 创建情绪分析服务。backend 为 nil 时只使用关键词引擎。
func NewService(backend Backend, cfg Config) *Service {
	return &Service{
		backend:  backend,
		fallback: analysis.Classify,
		timeout:  cfg.Timeout,
	}
}

// Enabled 返回是否配置了外部后端。
func (s *Service) Enabled() bool {
	return s != nil && s.backend != nil
}

// BackendName 返回当前生效的后端名称。
func (s *Service) BackendName() string {
	if !s.Enabled() {
		return SourceKeyword
	}
	return s.backend.Name()
}

// Analyze 对文本进行情绪分类，永远不会返回错误。
func (s *Service) Analyze(ctx context.Context, text string) Outcome {
	if strings.TrimSpace(text) == "" || !s.Enabled() {
		return s.keywordOutcome(text, "")
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.backend.Classify(callCtx, text)
	if err != nil {
		log.Printf("[emotion] %s backend failed, use fallback: %v", s.backend.Name(), err)
		return s.keywordOutcome(text, "fallback")
	}
	if !result.Emotion.Valid() {
		log.Printf("[emotion] %s backend returned unknown label %q, use fallback", s.backend.Name(), result.Emotion)
		return s.keywordOutcome(text, "fallback")
	}

	return Outcome{Result: result, Source: s.backend.Name(), Reason: result.Reason}
}

func (s *Service) keywordOutcome(text, reason string) Outcome {
	classify := analysis.Classify
	if s != nil && s.fallback != nil {
		classify = s.fallback
	}
	return Outcome{Result: classify(text), Source: SourceKeyword, Reason: reason}
}

func clampConfidence(val float64) float64 {
	if val <= 0 {
		return 0.6
	}
	if val < 0.1 {
		return 0.1
	}
	if val > 1 {
		return 1
	}
	return val
}
