package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mockview/internal/model"
	"mockview/internal/repository"
	"mockview/internal/scorer"
)

// ErrInvalidSession rejects submissions that reference no interview or
// carry no QA records.
var ErrInvalidSession = errors.New("invalid session")

// AnswerScorer scores one candidate answer against its reference.
// Satisfied by *scorer.Scorer.
type AnswerScorer interface {
	Score(ctx context.Context, answer, reference, question string) int
}

// SessionService persists finished interview attempts. Scoring happens at
// ingest: every answered pair gets a similarity score before the session
// is stored, so reads never trigger scoring work.
type SessionService struct {
	sessions   repository.SessionRepository
	interviews repository.InterviewRepository
	scorer     AnswerScorer
	logger     *zap.Logger
}

func NewSessionService(sessions repository.SessionRepository, interviews repository.InterviewRepository, answerScorer AnswerScorer, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:   sessions,
		interviews: interviews,
		scorer:     answerScorer,
		logger:     logger,
	}
}

// Create scores the session's answered pairs and stores it. Pairs are
// scored concurrently; their order in the stored session is the
// presentation order they arrived in.
func (s *SessionService) Create(ctx context.Context, session *model.Session) error {
	if session.InterviewID == "" {
		return fmt.Errorf("%w: interviewId is required", ErrInvalidSession)
	}
	if len(session.QNA) == 0 {
		return fmt.Errorf("%w: qna must not be empty", ErrInvalidSession)
	}

	if _, err := s.interviews.GetByID(ctx, session.InterviewID); err != nil {
		return err
	}

	s.scorePairs(ctx, session.QNA)

	if err := s.sessions.Create(ctx, session); err != nil {
		return err
	}

	if err := s.interviews.AddSessionID(ctx, session.InterviewID, session.ID); err != nil {
		// The session is stored; a missing back-reference only affects
		// history listings.
		s.logger.Warn("failed to link session to interview",
			zap.String("session_id", session.ID),
			zap.String("interview_id", session.InterviewID),
			zap.Error(err))
	}

	s.logger.Info("session recorded",
		zap.String("session_id", session.ID),
		zap.String("interview_id", session.InterviewID),
		zap.Int("pairs", len(session.QNA)))
	return nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

// History returns an interview's sessions, newest first.
func (s *SessionService) History(ctx context.Context, interviewID string) ([]*model.Session, error) {
	return s.sessions.GetByInterviewID(ctx, interviewID)
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

// scorePairs fills QuestionType and SimilarityScore in place. Unanswered
// pairs keep a nil score.
func (s *SessionService) scorePairs(ctx context.Context, pairs []model.QAPair) {
	var wg sync.WaitGroup
	for i := range pairs {
		pairs[i].QuestionType = model.QuestionTypeOpen
		if scorer.IsMCQ(pairs[i].Question) {
			pairs[i].QuestionType = model.QuestionTypeMCQ
		}

		if strings.TrimSpace(pairs[i].Answer) == "" {
			continue
		}

		wg.Add(1)
		go func(pair *model.QAPair) {
			defer wg.Done()
			score := s.scorer.Score(ctx, pair.Answer, pair.CorrectAnswer, pair.Question)
			pair.SimilarityScore = &score
		}(&pairs[i])
	}
	wg.Wait()
}
