package cronjobs

import (
	"testing"
	"time"
)

type fakeStore struct {
	swept   int
	maxIdle time.Duration
}

func (f *fakeStore) Sweep(maxIdle time.Duration) int {
	f.swept++
	f.maxIdle = maxIdle
	return 2
}

func (f *fakeStore) Len() int { return 0 }

func TestInitCronJobs(t *testing.T) {
	store := &fakeStore{}
	c, err := InitCronJobs(store, time.Hour)
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	defer c.Stop()

	if n := len(c.Entries()); n != 1 {
		t.Fatalf("expected 1 scheduled job, got %d", n)
	}

	sweepJob(store, time.Hour)()
	if store.swept != 1 || store.maxIdle != time.Hour {
		t.Fatalf("expected one sweep with 1h idle, got %d %v", store.swept, store.maxIdle)
	}
}
