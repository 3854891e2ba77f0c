package emotion

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	exactMatchBoost = 1.5
	intensifierGain = 2.0
	minConfidence   = 0.1
)

// Scores is the per-call accumulator, indexed in canonical label order.
type Scores [labelCount]float64

// Of returns the accumulated score for label, or 0 for labels outside the set.
func (s Scores) Of(label Label) float64 {
	idx := label.index()
	if idx < 0 {
		return 0
	}
	return s[idx]
}

// Total sums every accumulator.
func (s Scores) Total() float64 {
	return floats.Sum(s[:])
}

// Map converts the vector into a label keyed map, convenient for JSON.
func (s Scores) Map() map[Label]float64 {
	out := make(map[Label]float64, labelCount)
	for i, label := range canonicalOrder {
		out[label] = s[i]
	}
	return out
}

func (s *Scores) add(label Label, v float64) {
	s[label.index()] += v
}

// Result 给出情绪识别结果与置信度。Reason 只由外部后端填写。
type Result struct {
	Emotion    Label   `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Scores     Scores  `json:"-"`
	Reason     string  `json:"-"`
}

// Classify 根据关键词、否定词、程度词与标点模式推断文本情绪。
// 空白输入直接返回 neutral，置信度为 0。
func Classify(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Emotion: Neutral}
	}
	return decide(Score(text))
}

// Score returns the raw accumulator for text before normalization.
func Score(text string) Scores {
	var scores Scores

	tokens := strings.Fields(strings.ToLower(text))
	for i, token := range tokens {
		var prev, next string
		if i > 0 {
			prev = tokens[i-1]
		}
		if i+1 < len(tokens) {
			next = tokens[i+1]
		}

		negated := inSet(negators, prev) || inSet(negators, next)
		multiplier := 1.0
		if inSet(intensifiers, prev) || inSet(intensifiers, next) {
			multiplier = intensifierGain
		}

		for _, label := range canonicalOrder {
			for _, keyword := range keywordBuckets[label] {
				if !strings.Contains(keyword, token) && !strings.Contains(token, keyword) {
					continue
				}

				score := multiplier
				if token == keyword {
					score *= exactMatchBoost
				}

				if negated {
					target, factor := redirect(label)
					scores.add(target, score*factor)
					continue
				}
				scores.add(label, score)
			}
		}
	}

	for _, rule := range patternRules {
		if rule.pattern.MatchString(text) {
			scores.add(rule.emotion, rule.bonus)
		}
	}

	return scores
}

// redirect 返回被否定的触发词应转移到的情绪及系数。
func redirect(label Label) (Label, float64) {
	switch label {
	case Happy:
		return Sad, 0.5
	case Sad:
		return Neutral, 0.5
	default:
		return Neutral, 0.3
	}
}

func decide(scores Scores) Result {
	best := floats.MaxIdx(scores[:])
	top := scores[best]
	total := scores.Total()

	confidence := 0.0
	if total > 0 {
		confidence = top / total
	}
	if confidence < minConfidence {
		confidence = minConfidence
	}

	label := canonicalOrder[best]
	if top == 0 {
		label = Neutral
	}

	return Result{Emotion: label, Confidence: confidence, Scores: scores}
}
