package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mockview/internal/model"
)

// ReportCache handles Redis operations for derived analysis reports. A
// report is regenerable at any time, so cache entries carry a TTL and a
// miss is never an error.
type ReportCache interface {
	GetReport(ctx context.Context, sessionID string) (*model.AnalysisReport, error)
	SetReport(ctx context.Context, report *model.AnalysisReport) error
	InvalidateReport(ctx context.Context, sessionID string) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *reportCache) reportKey(sessionID string) string {
	return fmt.Sprintf("session:%s:report", sessionID)
}

func (c *reportCache) GetReport(ctx context.Context, sessionID string) (*model.AnalysisReport, error) {
	data, err := c.client.Get(ctx, c.reportKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *reportCache) SetReport(ctx context.Context, report *model.AnalysisReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.reportKey(report.SessionID), data, c.ttl).Err()
}

func (c *reportCache) InvalidateReport(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, c.reportKey(sessionID)).Err()
}
