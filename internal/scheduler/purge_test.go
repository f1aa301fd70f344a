package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/filippkowalski/heywish/internal/logger"
)

type fakePurgeStore struct {
	calls   int
	cutoffs []time.Time
	deleted int64
	err     error
}

func (f *fakePurgeStore) PurgeDeleted(ctx context.Context, olderThan time.Time) (int64, error) {
	f.calls++
	f.cutoffs = append(f.cutoffs, olderThan)
	return f.deleted, f.err
}

func TestPurger_Purge(t *testing.T) {
	log := logger.New("error", false)

	t.Run("passes threshold cutoff to store", func(t *testing.T) {
		store := &fakePurgeStore{deleted: 3}
		p := NewPurger(store, log, time.Hour, 48*time.Hour)

		before := time.Now().Add(-48 * time.Hour)
		if err := p.Purge(context.Background()); err != nil {
			t.Fatalf("Purge() error = %v", err)
		}
		after := time.Now().Add(-48 * time.Hour)

		if store.calls != 1 {
			t.Fatalf("store called %d times, want 1", store.calls)
		}
		cutoff := store.cutoffs[0]
		if cutoff.Before(before) || cutoff.After(after) {
			t.Errorf("cutoff %v outside expected window [%v, %v]", cutoff, before, after)
		}
	})

	t.Run("propagates store errors", func(t *testing.T) {
		wantErr := errors.New("db down")
		store := &fakePurgeStore{err: wantErr}
		p := NewPurger(store, log, time.Hour, time.Hour)

		if err := p.Purge(context.Background()); !errors.Is(err, wantErr) {
			t.Errorf("Purge() error = %v, want %v", err, wantErr)
		}
	})

	t.Run("zero threshold falls back to default", func(t *testing.T) {
		p := NewPurger(&fakePurgeStore{}, log, time.Hour, 0)
		if p.threshold != DefaultPurgeThreshold {
			t.Errorf("threshold = %v, want %v", p.threshold, DefaultPurgeThreshold)
		}
	})
}

func TestPurger_StartStop(t *testing.T) {
	log := logger.New("error", false)
	store := &fakePurgeStore{}
	p := NewPurger(store, log, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	// Start runs one purge synchronously before the ticker loop.
	if store.calls != 1 {
		t.Errorf("store called %d times after Start, want 1", store.calls)
	}
	p.Stop()
}
