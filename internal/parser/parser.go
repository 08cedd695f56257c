package parser

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"mockview/internal/model"
)

// Separator delimits independently generated QA blocks in model output.
const Separator = "QA_PAIR_SEPARATOR"

// minQuestionLen guards against separator fragments and label debris being
// mistaken for a question.
const minQuestionLen = 10

// ErrNoPairs is returned when a whole generation batch yields zero valid
// pairs. Callers treat it as a retryable generation failure, not data
// corruption.
var ErrNoPairs = errors.New("no question/answer pairs found in generated text")

var (
	preamblePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)here are`),
		regexp.MustCompile(`(?i)questions:`),
		regexp.MustCompile(`(?i)follow-up question[^:\n]*:`),
		regexp.MustCompile(`(?i)response:`),
	}

	pairPattern    = regexp.MustCompile(`(?is)QUESTION:\s*(.*?)\s*ANSWER:\s*(.*)`)
	mcqOptionLine  = regexp.MustCompile(`(?m)^\s*[A-D]\)`)
	answerLabel    = "ANSWER:"
	correctAnswer  = regexp.MustCompile(`(?i)^correct answer\s*:`)
	explanationTag = regexp.MustCompile(`(?i)^explanation\s*:`)
)

// SectionResult is the tagged outcome of parsing one separator-delimited
// section: either a pair or a skip reason. Skips are logged, never fatal.
type SectionResult struct {
	Pair    model.GeneratedPair
	Skipped bool
	Reason  string
}

// Parser extracts structured question/answer pairs from free-form
// generated text.
type Parser struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse converts one block of generated text into ordered QA pairs.
// In follow-up mode only the last non-empty section is considered, since
// follow-up generation may emit preamble chatter before the real pair.
// Returns ErrNoPairs only when the whole batch produces nothing.
func (p *Parser) Parse(raw string, followUp bool) ([]model.GeneratedPair, error) {
	sections := p.tokenize(raw, followUp)

	pairs := make([]model.GeneratedPair, 0, len(sections))
	for i, section := range sections {
		res := parseSection(section)
		if res.Skipped {
			p.logger.Debug("skipped section",
				zap.Int("section", i),
				zap.String("reason", res.Reason))
			continue
		}
		pairs = append(pairs, res.Pair)
	}

	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	p.logger.Info("parsed generation response",
		zap.Int("sections", len(sections)),
		zap.Int("pairs", len(pairs)),
		zap.Bool("followUp", followUp))
	return pairs, nil
}

// tokenize strips introductory chatter and splits the text into
// separator-delimited sections.
func (p *Parser) tokenize(raw string, followUp bool) []string {
	text := stripPreamble(raw)
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, Separator)
	text = strings.TrimSuffix(strings.TrimSpace(text), Separator)

	parts := strings.Split(text, Separator)

	sections := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			sections = append(sections, part)
		}
	}

	// One-to-one follow-up generation produces exactly one real pair; any
	// earlier sections are chatter the preamble strip did not catch.
	if followUp && len(sections) > 1 {
		sections = sections[len(sections)-1:]
	}
	return sections
}

// stripPreamble removes the earliest introductory phrase and everything
// before it.
func stripPreamble(text string) string {
	earliest := -1
	end := -1
	for _, pattern := range preamblePatterns {
		loc := pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if earliest == -1 || loc[0] < earliest {
			earliest = loc[0]
			end = loc[1]
		}
	}
	if earliest == -1 {
		return text
	}
	return text[end:]
}

// parseSection applies the extraction strategies in order: the labelled
// QUESTION/ANSWER pattern first, then a bare split on the ANSWER label.
func parseSection(section string) SectionResult {
	question, answer, ok := extractLabelled(section)
	if !ok {
		question, answer, ok = extractBySplit(section)
	}
	if !ok {
		return SectionResult{Skipped: true, Reason: "no recognizable question/answer labels"}
	}

	// Model over-generation guard: a section should never carry a nested
	// separator, but truncate the answer if one slipped through.
	if idx := strings.Index(answer, Separator); idx >= 0 {
		answer = strings.TrimSpace(answer[:idx])
	}

	if mcqOptionLine.MatchString(question) {
		answer = normalizeMCQAnswer(answer)
	}

	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	if len(question) <= minQuestionLen {
		return SectionResult{Skipped: true, Reason: "question too short"}
	}
	if answer == "" {
		return SectionResult{Skipped: true, Reason: "empty answer"}
	}

	return SectionResult{Pair: model.GeneratedPair{Question: question, CorrectAnswer: answer}}
}

func extractLabelled(section string) (question, answer string, ok bool) {
	m := pairPattern.FindStringSubmatch(section)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// extractBySplit handles sections where the QUESTION label is missing or
// mangled but an ANSWER label survives. The preamble before the label must
// be non-trivial to count as a question.
func extractBySplit(section string) (question, answer string, ok bool) {
	idx := strings.Index(section, answerLabel)
	if idx < 0 {
		return "", "", false
	}
	question = strings.TrimSpace(section[:idx])
	answer = section[idx+len(answerLabel):]
	if len(question) <= minQuestionLen {
		return "", "", false
	}
	return question, answer, true
}

// normalizeMCQAnswer keeps only the "Correct answer: ..." line plus an
// optional "Explanation: ..." line, discarding other freeform content the
// model produced around them.
func normalizeMCQAnswer(answer string) string {
	var kept []string
	for _, line := range strings.Split(answer, "\n") {
		trimmed := strings.TrimSpace(line)
		if correctAnswer.MatchString(trimmed) || explanationTag.MatchString(trimmed) {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return answer
	}
	return strings.Join(kept, "\n")
}
