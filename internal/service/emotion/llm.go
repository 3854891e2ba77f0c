package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/zhouzirui/moodlens/backend/internal/analysis/emotion"
)

var errEmptyCompletion = errors.New("empty completion")

// LLMBackend 通过 eino chain 调用大模型进行情绪分类。
type LLMBackend struct {
	classifier compose.Runnable[map[string]any, *schema.Message]
}

// NewLLMBackend 使用已有的聊天模型编译分类链。
func NewLLMBackend(ctx context.Context, chatModel model.ChatModel) (*LLMBackend, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(emotionSystemPrompt),
		schema.UserMessage(emotionUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile emotion classifier chain: %w", err)
	}

	return &LLMBackend{classifier: runnable}, nil
}

// Name implements Backend.
func (b *LLMBackend) Name() string {
	return "llm"
}

// Classify implements Backend.
func (b *LLMBackend) Classify(ctx context.Context, text string) (analysis.Result, error) {
	msg, err := b.classifier.Invoke(ctx, map[string]any{
		"text": strings.TrimSpace(text),
	})
	if err != nil {
		return analysis.Result{}, fmt.Errorf("invoke classifier: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return analysis.Result{}, errEmptyCompletion
	}

	payload, err := parseClassifierOutput(msg.Content)
	if err != nil {
		return analysis.Result{}, fmt.Errorf("parse classifier output: %w", err)
	}

	label, ok := analysis.Parse(payload.Emotion)
	if !ok {
		return analysis.Result{}, fmt.Errorf("unsupported emotion label %q", payload.Emotion)
	}

	return analysis.Result{
		Emotion:    label,
		Confidence: clampConfidence(payload.Confidence),
		Scores:     analysis.Score(text),
		Reason:     strings.TrimSpace(payload.Reason),
	}, nil
}

// parseClassifierOutput 解析大模型返回的 JSON，允许前后夹杂说明文字。
func parseClassifierOutput(content string) (*classifierPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &classifierPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type classifierPayload struct {
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

const emotionSystemPrompt = "You classify the emotional tone of short English texts. Choose exactly one emotion from: happy, sad, angry, fear, surprise, neutral.\nRespond with a single JSON object with the fields emotion (one of the labels above), confidence (a number between 0 and 1) and reason (one short sentence). Do not output anything else."

const emotionUserPrompt = "Text to classify:\n{text}"
