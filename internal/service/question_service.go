package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mockview/internal/model"
	"mockview/internal/parser"
)

// ErrGenerationFailed is the only generation error surfaced to callers as
// actionable: the generator produced text the parser could not extract a
// single pair from, and retrying is the remedy.
var ErrGenerationFailed = errors.New("could not generate questions, please retry")

// Generator produces raw question text from a rendered prompt.
// Satisfied by *genai.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PromptBuilder renders a generation request into prompt text.
type PromptBuilder func(req model.GenerationRequest) string

// QuestionService turns a generation request into a parsed QA batch.
type QuestionService struct {
	generator   Generator
	buildPrompt PromptBuilder
	parser      *parser.Parser
	logger      *zap.Logger
}

func NewQuestionService(generator Generator, buildPrompt PromptBuilder, p *parser.Parser, logger *zap.Logger) *QuestionService {
	return &QuestionService{
		generator:   generator,
		buildPrompt: buildPrompt,
		parser:      p,
		logger:      logger,
	}
}

// Generate renders the prompt for req, calls the generation endpoint and
// parses the response. Follow-up requests keep only the final pair of the
// generated text.
func (s *QuestionService) Generate(ctx context.Context, req model.GenerationRequest) (*model.GenerationResult, error) {
	prompt := s.buildPrompt(req)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("generation call failed",
			zap.String("mode", string(req.Mode)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	pairs, err := s.parser.Parse(raw, req.IsFollowUp())
	if err != nil {
		if errors.Is(err, parser.ErrNoPairs) {
			s.logger.Warn("generated text yielded no pairs",
				zap.String("mode", string(req.Mode)),
				zap.Int("raw_length", len(raw)))
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}
		return nil, err
	}

	s.logger.Info("questions generated",
		zap.String("mode", string(req.Mode)),
		zap.Int("pairs", len(pairs)))

	return &model.GenerationResult{QuestionsWithAnswers: pairs}, nil
}
