package scorer

import (
	"context"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// SimilarityClient abstracts the external semantic-similarity service.
// Implementations compare a source sentence against candidate sentences and
// return scores in [0,1].
type SimilarityClient interface {
	Similarity(ctx context.Context, source string, candidates []string) ([]float64, error)
}

// mcqCue matches bullet-style option markers (A), (A), A. ...) anywhere in
// a question. The MCQ branch is driven by the question's structure, not the
// answer's.
var mcqCue = regexp.MustCompile(`(?:^|[\s(])\(?[A-D][).]`)

// optionPatterns is the ordered list of extraction strategies for a single
// option letter. First match wins; the bare isolated letter is the last
// resort.
var optionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*([A-D])\s*$`),
	regexp.MustCompile(`(?i)^\s*\(?([A-D])\)`),
	regexp.MustCompile(`(?i)^\s*([A-D])\.`),
	regexp.MustCompile(`(?i)\boption\s+([A-D])\b`),
	regexp.MustCompile(`(?i)\banswer\s*:?\s*\(?([A-D])\b`),
	regexp.MustCompile(`(?i)\bcorrect answer\s*:\s*\(?([A-D])\b`),
	regexp.MustCompile(`\b([A-D])\b`),
}

// Scorer turns a candidate answer and a reference answer into a normalized
// [0,100] match score. Scoring never fails: service errors degrade to the
// local lexical heuristic, the worst case is 0.
type Scorer struct {
	similarity SimilarityClient
	logger     *zap.Logger
}

func New(similarity SimilarityClient, logger *zap.Logger) *Scorer {
	return &Scorer{similarity: similarity, logger: logger}
}

// IsMCQ reports whether a question is multiple-choice, based on structural
// cues in the question text. Classification is stable for a given string.
func IsMCQ(question string) bool {
	return mcqCue.MatchString(question)
}

// Score returns a [0,100] similarity score for a candidate answer against
// the reference answer of the given question.
func (s *Scorer) Score(ctx context.Context, answer, reference, question string) int {
	if strings.TrimSpace(answer) == "" || strings.TrimSpace(reference) == "" {
		return 0
	}

	if IsMCQ(question) {
		return scoreMCQ(answer, reference)
	}

	scores, err := s.similarity.Similarity(ctx, answer, []string{reference})
	if err != nil || len(scores) == 0 {
		s.logger.Warn("similarity service unavailable, using local fallback", zap.Error(err))
		return Fallback(answer, reference)
	}

	sim := scores[0]
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return int(math.Round(sim * 100))
}

// scoreMCQ compares extracted option letters; the score is binary. When
// extraction fails on either side it degrades to substring containment over
// the raw answers.
func scoreMCQ(answer, reference string) int {
	got, okGot := ExtractOption(answer)
	want, okWant := ExtractOption(reference)
	if okGot && okWant {
		if got == want {
			return 100
		}
		return 0
	}

	upperAnswer := strings.ToUpper(answer)
	upperReference := strings.ToUpper(reference)
	for _, letter := range []string{"A", "B", "C", "D"} {
		if strings.Contains(upperAnswer, letter) && strings.Contains(upperReference, letter) {
			return 100
		}
	}
	return 0
}

// ExtractOption pulls a single option letter (A-D) out of an answer using
// the ordered pattern list.
func ExtractOption(answer string) (string, bool) {
	trimmed := strings.TrimSpace(answer)
	for _, pattern := range optionPatterns {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return strings.ToUpper(m[1]), true
		}
	}
	return "", false
}

// Fallback is the deterministic local similarity heuristic used when the
// semantic service is unreachable: exact match, then Jaccard index over
// whitespace tokens. Option-like answers (both sides at most 3 characters)
// require an exact match.
func Fallback(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		if a == "" {
			return 0
		}
		return 100
	}
	if len(a) <= 3 && len(b) <= 3 {
		return 0
	}

	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return int(math.Round(float64(intersection) / float64(union) * 100))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}
