// Package textmetrics computes readability, lexical diversity and sentiment
// metrics over a set of free-text answers. All scores are normalized to
// [0,100]; every function is pure.
package textmetrics

import (
	"math"
	"regexp"
	"strings"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	nonWord       = regexp.MustCompile(`[^\w]`)
)

// Clarity scores how readable a set of answers is, combining a Flesch-like
// readability estimate with banded sentence-length, lexical-diversity and
// complexity components. Zero answers (or zero words) score 0.
func Clarity(answers []string) int {
	var (
		totalSentences int
		totalWords     int
		totalSyllables int
		complexWords   int
	)
	uniqueWords := make(map[string]struct{})

	for _, answer := range answers {
		text := strings.TrimSpace(answer)
		if text == "" {
			continue
		}

		for _, s := range sentenceSplit.Split(text, -1) {
			if strings.TrimSpace(s) != "" {
				totalSentences++
			}
		}

		for _, word := range strings.Fields(text) {
			totalWords++
			clean := nonWord.ReplaceAllString(strings.ToLower(word), "")
			if clean != "" {
				uniqueWords[clean] = struct{}{}
			}
			syllables := countSyllables(clean)
			totalSyllables += syllables
			if syllables >= 3 {
				complexWords++
			}
		}
	}

	if totalWords == 0 {
		return 0
	}

	var avgWordsPerSentence float64
	if totalSentences > 0 {
		avgWordsPerSentence = float64(totalWords) / float64(totalSentences)
	}
	lexicalDiversity := float64(len(uniqueWords)) / float64(totalWords)
	complexityRatio := float64(complexWords) / float64(totalWords)

	var flesch float64
	if totalSentences > 0 {
		flesch = 206.835 - 1.015*avgWordsPerSentence - 84.6*(float64(totalSyllables)/float64(totalWords))
	}
	flesch = clamp(flesch, 0, 100)

	score := flesch*0.40 +
		sentenceLengthScore(avgWordsPerSentence)*0.25 +
		diversityScore(lexicalDiversity)*0.20 +
		complexityScore(complexityRatio)*0.15

	return int(math.Round(clamp(score, 0, 100)))
}

// countSyllables estimates syllables as the number of vowel characters,
// with a floor of one; words of three letters or fewer count as one.
func countSyllables(word string) int {
	if len(word) <= 3 {
		return 1
	}
	count := 0
	for _, r := range strings.ToLower(word) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'y':
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// sentenceLengthScore peaks at 15-20 words per sentence and tapers by a
// linear penalty around a 17.5-word center elsewhere.
func sentenceLengthScore(avg float64) float64 {
	switch {
	case avg >= 15 && avg <= 20:
		return 100
	case avg >= 10 && avg < 15:
		return 80
	case avg >= 8 && avg < 10:
		return 60
	case avg >= 25 && avg <= 30:
		return 70
	default:
		return math.Max(20, 100-math.Abs(avg-17.5)*3)
	}
}

// diversityScore peaks at a unique-word ratio of 0.6-0.8.
func diversityScore(diversity float64) float64 {
	switch {
	case diversity >= 0.6 && diversity <= 0.8:
		return 100
	case diversity >= 0.5 && diversity < 0.6:
		return 80
	case diversity >= 0.4 && diversity < 0.5:
		return 60
	default:
		return math.Max(20, 100-math.Abs(diversity-0.7)*200)
	}
}

// complexityScore peaks at a complex-word ratio of 0.10-0.20.
func complexityScore(ratio float64) float64 {
	switch {
	case ratio >= 0.1 && ratio <= 0.2:
		return 100
	case ratio >= 0.05 && ratio < 0.1:
		return 80
	case ratio > 0.2 && ratio <= 0.3:
		return 70
	default:
		return math.Max(30, 100-math.Abs(ratio-0.15)*300)
	}
}

// ResponseStats returns the total word count across answers and the ratio
// of unique (lowercased) words to total words.
func ResponseStats(answers []string) (totalWords int, uniqueRatio float64) {
	unique := make(map[string]struct{})
	for _, answer := range answers {
		if strings.TrimSpace(answer) == "" {
			continue
		}
		for _, word := range strings.Fields(answer) {
			totalWords++
			unique[strings.ToLower(word)] = struct{}{}
		}
	}
	if totalWords > 0 {
		uniqueRatio = float64(len(unique)) / float64(totalWords)
	}
	return totalWords, uniqueRatio
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
