package textmetrics

import (
	"math"
	"regexp"
	"strings"
)

// Weighted sentiment lexicons. Positive weights run +1..+3, negative
// weights -1..-3.
var sentimentWeights = map[string]int{
	// positive
	"excellent": 3, "outstanding": 3, "exceptional": 3, "brilliant": 3,
	"amazing": 3, "fantastic": 3, "superb": 3, "wonderful": 3,
	"good": 2, "great": 2, "positive": 2, "confident": 2, "successful": 2,
	"effective": 2, "strong": 2, "capable": 2, "skilled": 2, "experienced": 2,
	"okay": 1, "fine": 1, "decent": 1, "adequate": 1, "satisfied": 1,
	"comfortable": 1, "interested": 1, "motivated": 1, "ready": 1, "able": 1,

	// negative
	"terrible": -3, "awful": -3, "horrible": -3, "disaster": -3,
	"failed": -3, "impossible": -3, "hate": -3, "worst": -3,
	"bad": -2, "poor": -2, "difficult": -2, "hard": -2, "struggle": -2,
	"problem": -2, "issue": -2, "concern": -2, "worried": -2, "nervous": -2,
	"challenging": -1, "tough": -1, "unclear": -1, "confused": -1,
	"uncertain": -1, "hesitant": -1, "concerned": -1, "tired": -1,
}

var negationWords = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "none": {}, "nothing": {},
	"neither": {}, "nor": {}, "hardly": {}, "barely": {}, "scarcely": {},
}

var nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)

// maxSentimentDensity is the density at which the score saturates: a
// weighted-hit density of +0.1 maps to 100, -0.1 to 0.
const maxSentimentDensity = 0.1

// Sentiment maps lexicon hits across a set of answers onto [0,100] around a
// neutral center of 50. A token's weight is negated when a negation word
// appears within the two preceding tokens. Answers with no lexicon words
// anywhere score exactly 50.
func Sentiment(answers []string) int {
	totalSentiment := 0
	totalWords := 0
	hits := 0

	for _, answer := range answers {
		if strings.TrimSpace(answer) == "" {
			continue
		}
		words := strings.Fields(nonWordOrSpace.ReplaceAllString(strings.ToLower(answer), " "))
		totalWords += len(words)

		for i, word := range words {
			weight, ok := sentimentWeights[word]
			if !ok {
				continue
			}
			if negatedAt(words, i) {
				weight = -weight
			}
			totalSentiment += weight
			hits++
		}
	}

	if hits == 0 {
		return 50
	}

	density := float64(totalSentiment) / float64(totalWords)
	normalized := (density/maxSentimentDensity + 1) * 50
	return int(math.Round(clamp(normalized, 0, 100)))
}

// negatedAt reports whether one of the negation words appears within the
// two tokens preceding index i.
func negatedAt(words []string, i int) bool {
	start := i - 2
	if start < 0 {
		start = 0
	}
	for j := start; j < i; j++ {
		if _, ok := negationWords[words[j]]; ok {
			return true
		}
	}
	return false
}
