package emotion

var displayColors = map[Label]string{
	Happy:    "hsl(var(--emotion-happy))",
	Sad:      "hsl(var(--emotion-sad))",
	Angry:    "hsl(var(--emotion-angry))",
	Fear:     "hsl(var(--emotion-fear))",
	Surprise: "hsl(var(--emotion-surprise))",
	Neutral:  "hsl(var(--emotion-neutral))",
}

var displayEmojis = map[Label]string{
	Happy:    "😊",
	Sad:      "😢",
	Angry:    "😠",
	Fear:     "😨",
	Surprise: "😲",
	Neutral:  "😐",
}

var descriptions = map[Label]string{
	Happy:    "Positive, cheerful or celebratory tone.",
	Sad:      "Low, hurt or disappointed tone.",
	Angry:    "Irritated, frustrated or hostile tone.",
	Fear:     "Worried, nervous or frightened tone.",
	Surprise: "Shocked, amazed or caught off guard.",
	Neutral:  "No strong emotional signal.",
}

// Color 返回情绪对应的展示颜色。集合外的标签按 neutral 处理。
func Color(label Label) string {
	if c, ok := displayColors[label]; ok {
		return c
	}
	return displayColors[Neutral]
}

// Emoji 返回情绪对应的表情符号。
func Emoji(label Label) string {
	if e, ok := displayEmojis[label]; ok {
		return e
	}
	return displayEmojis[Neutral]
}

// Describe returns a one-line English description for the legend.
func Describe(label Label) string {
	if d, ok := descriptions[label]; ok {
		return d
	}
	return descriptions[Neutral]
}
