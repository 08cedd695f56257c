package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"mockview/internal/model"
)

type stubReportCache struct {
	reports map[string]*model.AnalysisReport
	getErr  error
	sets    int
}

func newStubReportCache() *stubReportCache {
	return &stubReportCache{reports: make(map[string]*model.AnalysisReport)}
}

func (c *stubReportCache) GetReport(_ context.Context, sessionID string) (*model.AnalysisReport, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.reports[sessionID], nil
}

func (c *stubReportCache) SetReport(_ context.Context, report *model.AnalysisReport) error {
	c.sets++
	c.reports[report.SessionID] = report
	return nil
}

func (c *stubReportCache) InvalidateReport(_ context.Context, sessionID string) error {
	delete(c.reports, sessionID)
	return nil
}

type stubLock struct {
	held     map[string]bool
	acquires int
	releases int
}

func newStubLock() *stubLock {
	return &stubLock{held: make(map[string]bool)}
}

func (l *stubLock) Acquire(_ context.Context, sessionID string) (bool, error) {
	if l.held[sessionID] {
		return false, nil
	}
	l.held[sessionID] = true
	l.acquires++
	return true, nil
}

func (l *stubLock) Release(_ context.Context, sessionID string) error {
	delete(l.held, sessionID)
	l.releases++
	return nil
}

type stubAnalyzer struct {
	report model.AnalysisReport
	err    error
	calls  int
}

func (a *stubAnalyzer) Analyze(_ context.Context, session model.Session) (model.AnalysisReport, error) {
	a.calls++
	if a.err != nil {
		return model.AnalysisReport{}, a.err
	}
	report := a.report
	report.SessionID = session.ID
	return report, nil
}

func analysisFixture(t *testing.T) (*AnalysisService, *stubSessionRepo, *stubReportCache, *stubLock, *stubAnalyzer) {
	t.Helper()
	sessions := newStubSessionRepo()
	session := model.Session{
		InterviewID: "int-1",
		QNA:         []model.QAPair{{Question: "q", CorrectAnswer: "a", Answer: "an answer"}},
	}
	if err := sessions.Create(context.Background(), &session); err != nil {
		t.Fatal(err)
	}

	reports := newStubReportCache()
	lock := newStubLock()
	sessionAnalyzer := &stubAnalyzer{report: model.AnalysisReport{OverallScore: 77.5, OverallRating: "Good"}}
	svc := NewAnalysisService(sessions, sessionAnalyzer, reports, lock, zap.NewNop())
	return svc, sessions, reports, lock, sessionAnalyzer
}

func TestReportGeneratesAndCaches(t *testing.T) {
	svc, _, reports, lock, sessionAnalyzer := analysisFixture(t)

	report, err := svc.Report(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.SessionID != "sess-1" || report.OverallScore != 77.5 {
		t.Fatalf("report = %+v", report)
	}
	if reports.sets != 1 {
		t.Fatalf("cache writes = %d, want 1", reports.sets)
	}
	if lock.acquires != 1 || lock.releases != 1 {
		t.Fatalf("lock acquires/releases = %d/%d, want 1/1", lock.acquires, lock.releases)
	}

	// Second request is served from cache without re-analyzing.
	if _, err := svc.Report(context.Background(), "sess-1"); err != nil {
		t.Fatalf("cached Report: %v", err)
	}
	if sessionAnalyzer.calls != 1 {
		t.Fatalf("analyzer calls = %d, want 1", sessionAnalyzer.calls)
	}
}

func TestReportRejectsWhenLockHeld(t *testing.T) {
	svc, _, _, lock, sessionAnalyzer := analysisFixture(t)
	lock.held["sess-1"] = true

	if _, err := svc.Report(context.Background(), "sess-1"); !errors.Is(err, ErrAnalysisInProgress) {
		t.Fatalf("err = %v, want ErrAnalysisInProgress", err)
	}
	if sessionAnalyzer.calls != 0 {
		t.Fatalf("analyzer ran despite held lock")
	}
}

func TestReportCacheOutageDegradesToRegeneration(t *testing.T) {
	svc, _, reports, _, sessionAnalyzer := analysisFixture(t)
	reports.getErr = errors.New("redis down")

	report, err := svc.Report(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.OverallRating != "Good" {
		t.Fatalf("report = %+v", report)
	}
	if sessionAnalyzer.calls != 1 {
		t.Fatalf("analyzer calls = %d, want 1", sessionAnalyzer.calls)
	}
}

func TestReportUnknownSession(t *testing.T) {
	svc, _, _, lock, _ := analysisFixture(t)

	if _, err := svc.Report(context.Background(), "missing"); err == nil {
		t.Fatalf("expected error for unknown session")
	}
	if lock.releases != 1 {
		t.Fatalf("lock not released on failure, releases = %d", lock.releases)
	}
}

func TestReportAnalyzerFailurePropagates(t *testing.T) {
	svc, _, reports, lock, sessionAnalyzer := analysisFixture(t)
	sessionAnalyzer.err = errors.New("sampler crashed")

	if _, err := svc.Report(context.Background(), "sess-1"); err == nil {
		t.Fatalf("expected analyzer error")
	}
	if reports.sets != 0 {
		t.Fatalf("failed analysis cached")
	}
	if lock.releases != 1 {
		t.Fatalf("lock not released on failure")
	}
}

func TestInvalidateDropsCachedReport(t *testing.T) {
	svc, _, _, _, sessionAnalyzer := analysisFixture(t)

	if _, err := svc.Report(context.Background(), "sess-1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Invalidate(context.Background(), "sess-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Report(context.Background(), "sess-1"); err != nil {
		t.Fatal(err)
	}
	if sessionAnalyzer.calls != 2 {
		t.Fatalf("analyzer calls = %d, want 2 after invalidation", sessionAnalyzer.calls)
	}
}
