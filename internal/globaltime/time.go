package globaltime

import (
	"context"
	"sync"
	"time"
)

var (
	mu        sync.RWMutex
	nowFunc   = time.Now
	sleepFunc = realSleep
)

func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return nowFunc()
}

func UTC() time.Time {
	return Now().UTC()
}

// Sleep pauses for d or until ctx is cancelled, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	mu.RLock()
	fn := sleepFunc
	mu.RUnlock()
	return fn(ctx, d)
}

func realSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func SetMockTime(t time.Time) {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = func() time.Time { return t }
}

func ResetTime() {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = time.Now
}

func SetMockSleep(fn func(ctx context.Context, d time.Duration) error) {
	mu.Lock()
	defer mu.Unlock()
	sleepFunc = fn
}

func ResetSleep() {
	mu.Lock()
	defer mu.Unlock()
	sleepFunc = realSleep
}
