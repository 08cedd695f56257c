// Package analyzer turns a finished session into an analysis report by
// combining text metrics over the candidate's answers with media metrics
// sampled from the recording.
package analyzer

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"mockview/internal/media"
	"mockview/internal/model"
	"mockview/internal/textmetrics"
)

// ErrAnalysisInProgress is returned when a second analysis of the same
// session is requested while the first is still running. Callers should
// retry after the running analysis completes; requests are rejected,
// not queued.
var ErrAnalysisInProgress = errors.New("analysis already in progress for this session")

// MediaSampler yields per-recording metrics. Satisfied by *media.Sampler.
type MediaSampler interface {
	Sample(ctx context.Context, recordingURL string) media.Result
}

// Analyzer derives reports on demand. Repeat runs for one session are
// serialized by a per-session lock so a single recording handle is never
// sampled concurrently; sessions with different ids proceed independently.
type Analyzer struct {
	sampler MediaSampler
	logger  *zap.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New(sampler MediaSampler, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		sampler:  sampler,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// Analyze produces a report for one session. Text metrics run over the
// answered pairs only; media metrics degrade to neutral values when the
// session has no recording.
func (a *Analyzer) Analyze(ctx context.Context, session model.Session) (model.AnalysisReport, error) {
	if !a.tryAcquire(session.ID) {
		return model.AnalysisReport{}, ErrAnalysisInProgress
	}
	defer a.release(session.ID)

	answers := answeredTexts(session.QNA)

	clarity := textmetrics.Clarity(answers)
	sentiment := textmetrics.Sentiment(answers)
	totalWords, uniqueRatio := textmetrics.ResponseStats(answers)

	var mediaResult media.Result
	if session.RecordingURL != "" {
		mediaResult = a.sampler.Sample(ctx, session.RecordingURL)
	} else {
		a.logger.Debug("session has no recording, using neutral media metrics",
			zap.String("session_id", session.ID))
		mediaResult.Emotion = media.Aggregate(nil)
	}

	overall := round2((float64(clarity) + float64(sentiment) + mediaResult.Audio.SpeechClarity) / 3)

	return model.AnalysisReport{
		SessionID:       session.ID,
		ClarityScore:    float64(clarity),
		SentimentScore:  float64(sentiment),
		ResponseLength:  totalWords,
		UniqueWordRatio: uniqueRatio,
		VideoMetrics:    mediaResult.Video,
		AudioMetrics:    mediaResult.Audio,
		EmotionSummary:  mediaResult.Emotion,
		OverallScore:    overall,
		OverallRating:   Rating(overall),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// Rating maps an overall score onto its presentation band.
func Rating(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 50:
		return "Average"
	default:
		return "Needs Improvement"
	}
}

func (a *Analyzer) tryAcquire(sessionID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, held := a.inFlight[sessionID]; held {
		return false
	}
	a.inFlight[sessionID] = struct{}{}
	return true
}

func (a *Analyzer) release(sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inFlight, sessionID)
}

func answeredTexts(pairs []model.QAPair) []string {
	var answers []string
	for _, pair := range pairs {
		if text := strings.TrimSpace(pair.Answer); text != "" {
			answers = append(answers, text)
		}
	}
	return answers
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
