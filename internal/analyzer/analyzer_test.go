package analyzer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"mockview/internal/media"
	"mockview/internal/model"
)

type stubSampler struct {
	result  media.Result
	calls   int
	lastURL string
	started chan struct{}
	unblock chan struct{}
}

func (s *stubSampler) Sample(_ context.Context, recordingURL string) media.Result {
	s.calls++
	s.lastURL = recordingURL
	if s.started != nil {
		close(s.started)
	}
	if s.unblock != nil {
		<-s.unblock
	}
	return s.result
}

func sessionWithAnswers(id string, answers ...string) model.Session {
	session := model.Session{ID: id}
	for i, answer := range answers {
		session.QNA = append(session.QNA, model.QAPair{
			Question:      fmt.Sprintf("Question %d", i+1),
			CorrectAnswer: "reference",
			Answer:        answer,
			QuestionType:  model.QuestionTypeOpen,
		})
	}
	return session
}

func TestAnalyzeCombinesTextAndMediaMetrics(t *testing.T) {
	sampler := &stubSampler{result: media.Result{
		Video: model.VideoMetrics{Brightness: 120, Movement: 3.5},
		Audio: model.AudioMetrics{Volume: 48, SpeechClarity: 90},
		Emotion: model.EmotionSummary{
			PrimaryEmotion: "calm",
			Confidence:     75,
			Emotions:       []model.EmotionScore{{Label: "calm", Score: 1.0}},
			Description:    "steady",
		},
	}}
	a := New(sampler, zap.NewNop())

	session := sessionWithAnswers("sess-1",
		"I profile the slow endpoint first and then add an index where the plan shows a scan.",
		"Great results came from measuring before changing anything.")
	session.RecordingURL = "recordings/sess-1.webm"

	report, err := a.Analyze(context.Background(), session)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if sampler.lastURL != "recordings/sess-1.webm" {
		t.Fatalf("sampler url = %q", sampler.lastURL)
	}
	if report.SessionID != "sess-1" {
		t.Fatalf("session id = %q", report.SessionID)
	}
	if report.ClarityScore <= 0 || report.ClarityScore > 100 {
		t.Fatalf("clarity out of range: %v", report.ClarityScore)
	}
	if report.SentimentScore <= 50 {
		t.Fatalf("positive answers scored %v, want > 50", report.SentimentScore)
	}
	if report.ResponseLength == 0 || report.UniqueWordRatio <= 0 {
		t.Fatalf("response stats missing: %d, %v", report.ResponseLength, report.UniqueWordRatio)
	}
	if report.AudioMetrics.SpeechClarity != 90 {
		t.Fatalf("speech clarity = %v", report.AudioMetrics.SpeechClarity)
	}
	want := round2((report.ClarityScore + report.SentimentScore + 90) / 3)
	if report.OverallScore != want {
		t.Fatalf("overall = %v, want %v", report.OverallScore, want)
	}
	if report.OverallRating != Rating(report.OverallScore) {
		t.Fatalf("rating %q does not match score %v", report.OverallRating, report.OverallScore)
	}
	if report.GeneratedAt.IsZero() {
		t.Fatalf("generatedAt not set")
	}
}

func TestAnalyzeWithoutRecordingSkipsSampler(t *testing.T) {
	sampler := &stubSampler{}
	a := New(sampler, zap.NewNop())

	report, err := a.Analyze(context.Background(), sessionWithAnswers("sess-2", "an ordinary answer"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if sampler.calls != 0 {
		t.Fatalf("sampler called %d times for recording-less session", sampler.calls)
	}
	if report.EmotionSummary.PrimaryEmotion != "neutral" {
		t.Fatalf("emotion = %q, want neutral", report.EmotionSummary.PrimaryEmotion)
	}
	if report.AudioMetrics.SpeechClarity != 0 {
		t.Fatalf("speech clarity = %v, want 0", report.AudioMetrics.SpeechClarity)
	}
}

func TestAnalyzeRejectsConcurrentSameSession(t *testing.T) {
	sampler := &stubSampler{
		started: make(chan struct{}),
		unblock: make(chan struct{}),
	}
	a := New(sampler, zap.NewNop())

	session := sessionWithAnswers("sess-3", "first answer")
	session.RecordingURL = "recordings/sess-3.webm"

	done := make(chan error, 1)
	go func() {
		_, err := a.Analyze(context.Background(), session)
		done <- err
	}()

	<-sampler.started

	if _, err := a.Analyze(context.Background(), session); !errors.Is(err, ErrAnalysisInProgress) {
		t.Fatalf("concurrent same-session analysis: err = %v, want ErrAnalysisInProgress", err)
	}

	// A different session is not blocked by sess-3's lock.
	other := sessionWithAnswers("sess-4", "another answer")
	if _, err := a.Analyze(context.Background(), other); err != nil {
		t.Fatalf("independent session rejected: %v", err)
	}

	close(sampler.unblock)
	if err := <-done; err != nil {
		t.Fatalf("first analysis: %v", err)
	}

	// The lock is released once the first run finishes.
	if _, err := a.Analyze(context.Background(), sessionWithAnswers("sess-3", "retry")); err != nil {
		t.Fatalf("rerun after completion: %v", err)
	}
}

func TestRatingBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{92.5, "Excellent"},
		{80, "Excellent"},
		{79.99, "Good"},
		{70, "Good"},
		{65, "Fair"},
		{60, "Fair"},
		{50, "Average"},
		{49.99, "Needs Improvement"},
		{0, "Needs Improvement"},
	}
	for _, tc := range cases {
		if got := Rating(tc.score); got != tc.want {
			t.Fatalf("Rating(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestAnalyzeIgnoresUnansweredPairs(t *testing.T) {
	a := New(&stubSampler{}, zap.NewNop())

	session := model.Session{
		ID: "sess-5",
		QNA: []model.QAPair{
			{Question: "Q1", CorrectAnswer: "ref", Answer: "  "},
			{Question: "Q2", CorrectAnswer: "ref", Answer: ""},
		},
	}

	report, err := a.Analyze(context.Background(), session)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.ClarityScore != 0 {
		t.Fatalf("clarity = %v, want 0 with no answered pairs", report.ClarityScore)
	}
	if report.SentimentScore != 50 {
		t.Fatalf("sentiment = %v, want neutral 50", report.SentimentScore)
	}
	if report.ResponseLength != 0 {
		t.Fatalf("response length = %d, want 0", report.ResponseLength)
	}
}
