package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"mockview/internal/model"
	"mockview/internal/repository"
)

// ErrInvalidInterview rejects create requests missing required fields.
var ErrInvalidInterview = errors.New("invalid interview")

// InterviewService manages interview definitions: the role/experience
// configuration sessions are recorded against.
type InterviewService struct {
	interviews repository.InterviewRepository
	logger     *zap.Logger
}

func NewInterviewService(interviews repository.InterviewRepository, logger *zap.Logger) *InterviewService {
	return &InterviewService{
		interviews: interviews,
		logger:     logger,
	}
}

func (s *InterviewService) Create(ctx context.Context, interview *model.Interview) error {
	if interview.Role == "" {
		return fmt.Errorf("%w: role is required", ErrInvalidInterview)
	}
	if interview.Mode != model.ModeWritten && interview.Mode != model.ModeOneToOne {
		return fmt.Errorf("%w: mode must be %q or %q", ErrInvalidInterview, model.ModeWritten, model.ModeOneToOne)
	}
	if interview.IsProfileBased && (interview.Resume == "" || len(interview.Skills) == 0) {
		return fmt.Errorf("%w: profile-based interview requires resume and skills", ErrInvalidInterview)
	}

	if err := s.interviews.Create(ctx, interview); err != nil {
		return err
	}

	s.logger.Info("interview created",
		zap.String("interview_id", interview.ID),
		zap.String("role", interview.Role),
		zap.String("mode", string(interview.Mode)))
	return nil
}

func (s *InterviewService) Get(ctx context.Context, id string) (*model.Interview, error) {
	return s.interviews.GetByID(ctx, id)
}

func (s *InterviewService) List(ctx context.Context) ([]*model.Interview, error) {
	return s.interviews.List(ctx)
}

func (s *InterviewService) Delete(ctx context.Context, id string) error {
	if err := s.interviews.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("interview deleted", zap.String("interview_id", id))
	return nil
}
