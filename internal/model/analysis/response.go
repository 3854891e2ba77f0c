package analysis

import (
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/moodlens/backend/internal/analysis/emotion"
	emotionservice "github.com/zhouzirui/moodlens/backend/internal/service/emotion"
)

// AnalyzeResponse 文本情绪分析响应
type AnalyzeResponse struct {
	ID         string                    `json:"id"`
	Text       string                    `json:"text"`
	Emotion    emotion.Label             `json:"emotion"`
	Confidence float64                   `json:"confidence"`
	Color      string                    `json:"color"`
	Emoji      string                    `json:"emoji"`
	Source     string                    `json:"source"`
	Reason     string                    `json:"reason,omitempty"`
	Scores     map[emotion.Label]float64 `json:"scores"`
	CreatedAt  time.Time                 `json:"createdAt"`
}

// NewAnalyzeResponse 把服务层结果转换为对外响应。
func NewAnalyzeResponse(text string, outcome emotionservice.Outcome) AnalyzeResponse {
	result := outcome.Result
	return AnalyzeResponse{
		ID:         uuid.NewString(),
		Text:       text,
		Emotion:    result.Emotion,
		Confidence: result.Confidence,
		Color:      emotion.Color(result.Emotion),
		Emoji:      emotion.Emoji(result.Emotion),
		Source:     outcome.Source,
		Reason:     outcome.Reason,
		Scores:     result.Scores.Map(),
		CreatedAt:  time.Now().UTC(),
	}
}

// LegendEntry 描述一种情绪的展示信息。
type LegendEntry struct {
	Emotion     emotion.Label `json:"emotion"`
	Emoji       string        `json:"emoji"`
	Color       string        `json:"color"`
	Description string        `json:"description"`
}

// Legend 按固定顺序返回所有情绪的展示信息。
func Legend() []LegendEntry {
	labels := emotion.Labels()
	entries := make([]LegendEntry, 0, len(labels))
	for _, label := range labels {
		entries = append(entries, LegendEntry{
			Emotion:     label,
			Emoji:       emotion.Emoji(label),
			Color:       emotion.Color(label),
			Description: emotion.Describe(label),
		})
	}
	return entries
}

// Examples 是前端“试试这些例子”里展示的文本。
var Examples = []string{
	"I just got promoted at work!",
	"I'm feeling really down today",
	"This traffic is making me so frustrated",
	"I can't believe what just happened!",
	"I'm nervous about the presentation tomorrow",
}
