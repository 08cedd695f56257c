package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnalysisLock serializes analysis runs for one session across processes.
// Acquire is non-blocking: a held lock means the caller must reject the
// request, not queue it. The TTL guards against a crashed holder leaving a
// session permanently locked.
type AnalysisLock interface {
	Acquire(ctx context.Context, sessionID string) (bool, error)
	Release(ctx context.Context, sessionID string) error
}

type analysisLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalysisLock(client *redis.Client) AnalysisLock {
	return &analysisLock{
		client: client,
		ttl:    2 * time.Minute,
	}
}

func (l *analysisLock) lockKey(sessionID string) string {
	return fmt.Sprintf("session:%s:analysis-lock", sessionID)
}

func (l *analysisLock) Acquire(ctx context.Context, sessionID string) (bool, error) {
	return l.client.SetNX(ctx, l.lockKey(sessionID), "1", l.ttl).Result()
}

func (l *analysisLock) Release(ctx context.Context, sessionID string) error {
	return l.client.Del(ctx, l.lockKey(sessionID)).Err()
}
