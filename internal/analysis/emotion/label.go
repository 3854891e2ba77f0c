package emotion

import "strings"

// Label 表示分类器可以输出的情绪标签，集合固定不变。
type Label string

const (
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Fear     Label = "fear"
	Surprise Label = "surprise"
	Neutral  Label = "neutral"
)

const labelCount = 6

// canonicalOrder 决定平分时的胜出顺序。
var canonicalOrder = [labelCount]Label{Happy, Sad, Angry, Fear, Surprise, Neutral}

// Labels returns every label in canonical order.
func Labels() []Label {
	out := make([]Label, labelCount)
	copy(out, canonicalOrder[:])
	return out
}

// Valid reports whether l belongs to the closed label set.
func (l Label) Valid() bool {
	return l.index() >= 0
}

func (l Label) index() int {
	switch l {
	case Happy:
		return 0
	case Sad:
		return 1
	case Angry:
		return 2
	case Fear:
		return 3
	case Surprise:
		return 4
	case Neutral:
		return 5
	default:
		return -1
	}
}

// labelAliases 把外部模型常见的输出映射到固定集合。
var labelAliases = map[string]Label{
	"joy":       Happy,
	"happiness": Happy,
	"positive":  Happy,
	"love":      Happy,
	"sadness":   Sad,
	"negative":  Sad,
	"anger":     Angry,
	"rage":      Angry,
	"disgust":   Angry,
	"anxiety":   Fear,
	"amazement": Surprise,
	"surprised": Surprise,
	"scared":    Fear,
	"calm":      Neutral,
}

// Parse maps a free-form label (model output, query parameter) onto the
// closed label set.
func Parse(raw string) (Label, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", false
	}
	if label := Label(normalized); label.Valid() {
		return label, true
	}
	label, ok := labelAliases[normalized]
	return label, ok
}
