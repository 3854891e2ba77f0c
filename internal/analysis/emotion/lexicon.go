package emotion

import "regexp"

// keywordBuckets 为每种情绪列出触发词（小写）。
var keywordBuckets = map[Label][]string{
	Happy: {
		"happy", "joy", "excited", "great", "awesome", "amazing", "wonderful", "fantastic", "love",
		"brilliant", "excellent", "promoted", "celebration", "congratulations", "glad", "cheerful",
		"proud", "grateful", "yay",
	},
	Sad: {
		"sad", "depressed", "crying", "hurt", "disappointed", "lonely", "heartbroken", "miserable",
		"sorrow", "grief", "upset", "down", "gloomy", "despair", "mourning", "tears",
	},
	Angry: {
		"angry", "mad", "furious", "annoyed", "irritated", "frustrated", "hate", "disgusted",
		"outraged", "livid", "pissed", "rage", "fed up",
	},
	Fear: {
		"scared", "afraid", "terrified", "anxious", "worried", "nervous", "panic", "frightened",
		"fearful", "concerned", "dread", "uneasy",
	},
	Surprise: {
		"surprised", "shocked", "amazed", "astonished", "wow", "incredible", "unbelievable",
		"unexpected", "sudden", "can't believe", "stunned", "whoa",
	},
	Neutral: {
		"okay", "fine", "normal", "regular", "standard", "typical", "usual", "alright",
	},
}

var intensifiers = wordSet(
	"very", "really", "so", "extremely", "incredibly", "absolutely", "totally",
	"completely", "super", "quite", "too", "truly",
)

var negators = wordSet(
	"not", "no", "never", "don't", "doesn't", "didn't", "isn't", "wasn't",
	"aren't", "won't", "cannot", "nothing", "neither", "nor", "hardly",
)

type patternRule struct {
	pattern *regexp.Regexp
	emotion Label
	bonus   float64
}

// patternRules 作用于原始文本（未转小写），每条规则最多加分一次。
// ">:(" 同时命中 ":(" 规则，两者都会加分。
var patternRules = []patternRule{
	{pattern: regexp.MustCompile(`!{2,}`), emotion: Surprise, bonus: 2},
	{pattern: regexp.MustCompile(`\?{2,}`), emotion: Surprise, bonus: 1.5},
	{pattern: regexp.MustCompile(`\.{3,}`), emotion: Neutral, bonus: 1},
	{pattern: regexp.MustCompile(`[A-Z]{3,}`), emotion: Angry, bonus: 1.5},
	{pattern: regexp.MustCompile(`:\)`), emotion: Happy, bonus: 2},
	{pattern: regexp.MustCompile(`:\(`), emotion: Sad, bonus: 2},
	{pattern: regexp.MustCompile(`:D`), emotion: Happy, bonus: 3},
	{pattern: regexp.MustCompile(`>:\(`), emotion: Angry, bonus: 2},
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, word string) bool {
	if word == "" {
		return false
	}
	_, ok := set[word]
	return ok
}

// Keywords returns a copy of the trigger words for label.
func Keywords(label Label) []string {
	return append([]string(nil), keywordBuckets[label]...)
}
