package locker_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codequest-2025.net/internal/adapter/redis/locker"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestLocker(t *testing.T) (*locker.ExecutionLocker, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return locker.NewExecutionLocker(client, nopLogger{}), srv
}

func TestAcquireIsExclusive(t *testing.T) {
	t.Parallel()
	l, _ := newTestLocker(t)
	id := uuid.New()

	acquired, err := l.Acquire(context.Background(), id, time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if !acquired {
		t.Fatalf("expected first acquire to succeed")
	}

	again, err := l.Acquire(context.Background(), id, time.Minute)
	if err != nil {
		t.Fatalf("second acquire errored: %v", err)
	}
	if again {
		t.Fatalf("expected second acquire to be rejected while held")
	}
}

func TestAcquireIsScopedPerSubmission(t *testing.T) {
	t.Parallel()
	l, _ := newTestLocker(t)

	if ok, _ := l.Acquire(context.Background(), uuid.New(), time.Minute); !ok {
		t.Fatalf("expected first submission lock")
	}
	if ok, _ := l.Acquire(context.Background(), uuid.New(), time.Minute); !ok {
		t.Fatalf("a lock on one submission must not block another")
	}
}

func TestAcquireSetsTTL(t *testing.T) {
	t.Parallel()
	l, srv := newTestLocker(t)
	id := uuid.New()

	if ok, _ := l.Acquire(context.Background(), id, 42*time.Second); !ok {
		t.Fatalf("expected acquire to succeed")
	}
	key := "execution:lock:" + id.String()
	if got := srv.TTL(key); got != 42*time.Second {
		t.Fatalf("expected 42s TTL, got %s", got)
	}
}

func TestAcquireDefaultsTTLWhenUnset(t *testing.T) {
	t.Parallel()
	l, srv := newTestLocker(t)
	id := uuid.New()

	if ok, _ := l.Acquire(context.Background(), id, 0); !ok {
		t.Fatalf("expected acquire to succeed")
	}
	key := "execution:lock:" + id.String()
	if got := srv.TTL(key); got != locker.DefaultLockTTL {
		t.Fatalf("expected default TTL %s, got %s", locker.DefaultLockTTL, got)
	}
}

func TestReleaseAllowsReacquire(t *testing.T) {
	t.Parallel()
	l, _ := newTestLocker(t)
	id := uuid.New()

	if ok, _ := l.Acquire(context.Background(), id, time.Minute); !ok {
		t.Fatalf("expected first acquire to succeed")
	}
	l.Release(context.Background(), id)

	acquired, err := l.Acquire(context.Background(), id, time.Minute)
	if err != nil {
		t.Fatalf("reacquire errored: %v", err)
	}
	if !acquired {
		t.Fatalf("expected reacquire after release")
	}
}

func TestExpiredLockCanBeReacquired(t *testing.T) {
	t.Parallel()
	l, srv := newTestLocker(t)
	id := uuid.New()

	if ok, _ := l.Acquire(context.Background(), id, time.Second); !ok {
		t.Fatalf("expected acquire to succeed")
	}
	srv.FastForward(2 * time.Second)

	if ok, _ := l.Acquire(context.Background(), id, time.Second); !ok {
		t.Fatalf("expected acquire after TTL expiry")
	}
}

func TestAcquireFailsClosedOnStoreError(t *testing.T) {
	t.Parallel()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	l := locker.NewExecutionLocker(client, nopLogger{})
	srv.Close()

	acquired, err := l.Acquire(context.Background(), uuid.New(), time.Minute)
	if err == nil {
		t.Fatalf("expected store error to surface")
	}
	if acquired {
		t.Fatalf("a store error must never grant the lock")
	}
}
