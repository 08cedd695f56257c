package service

import (
	"context"

	"go.uber.org/zap"

	"mockview/internal/analyzer"
	"mockview/internal/cache"
	"mockview/internal/model"
	"mockview/internal/repository"
)

// ErrAnalysisInProgress mirrors the analyzer's rejection so transport code
// only depends on the service package for error mapping.
var ErrAnalysisInProgress = analyzer.ErrAnalysisInProgress

// SessionAnalyzer derives a report from one session.
// Satisfied by *analyzer.Analyzer.
type SessionAnalyzer interface {
	Analyze(ctx context.Context, session model.Session) (model.AnalysisReport, error)
}

// AnalysisService serves session reports. Reports are derived data: a
// cache hit returns immediately, a miss regenerates under a per-session
// lock so two processes never sample one recording at the same time.
type AnalysisService struct {
	sessions repository.SessionRepository
	analyzer SessionAnalyzer
	reports  cache.ReportCache
	lock     cache.AnalysisLock
	logger   *zap.Logger
}

func NewAnalysisService(sessions repository.SessionRepository, sessionAnalyzer SessionAnalyzer, reports cache.ReportCache, lock cache.AnalysisLock, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		sessions: sessions,
		analyzer: sessionAnalyzer,
		reports:  reports,
		lock:     lock,
		logger:   logger,
	}
}

// Report returns the analysis report for a session, generating and caching
// it on first request. A concurrent request for the same session while
// generation runs gets ErrAnalysisInProgress.
func (s *AnalysisService) Report(ctx context.Context, sessionID string) (*model.AnalysisReport, error) {
	cached, err := s.reports.GetReport(ctx, sessionID)
	if err != nil {
		// A cache outage degrades to regeneration, not failure.
		s.logger.Warn("report cache read failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	acquired, err := s.lock.Acquire(ctx, sessionID)
	if err != nil {
		s.logger.Warn("analysis lock unavailable, relying on in-process lock",
			zap.String("session_id", sessionID),
			zap.Error(err))
	} else if !acquired {
		return nil, ErrAnalysisInProgress
	}
	if err == nil {
		defer func() {
			if releaseErr := s.lock.Release(context.WithoutCancel(ctx), sessionID); releaseErr != nil {
				s.logger.Warn("analysis lock release failed",
					zap.String("session_id", sessionID),
					zap.Error(releaseErr))
			}
		}()
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	report, err := s.analyzer.Analyze(ctx, *session)
	if err != nil {
		return nil, err
	}

	if err := s.reports.SetReport(ctx, &report); err != nil {
		s.logger.Warn("report cache write failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.logger.Info("report generated",
		zap.String("session_id", sessionID),
		zap.Float64("overall_score", report.OverallScore),
		zap.String("rating", report.OverallRating))

	return &report, nil
}

// Invalidate drops a cached report, forcing regeneration on next request.
func (s *AnalysisService) Invalidate(ctx context.Context, sessionID string) error {
	return s.reports.InvalidateReport(ctx, sessionID)
}
