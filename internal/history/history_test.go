package history

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jfmyers9/verses/pkg/genius"
)

// createTestStore creates an in-memory SQLite store for testing
func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestOpen(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		store, err := Open(":memory:")
		if err != nil {
			t.Fatalf("failed to open in-memory store: %v", err)
		}
		defer func() { _ = store.Close() }()

		if store.db == nil {
			t.Error("store database is nil")
		}
	})

	t.Run("file-based database survives reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history.db")
		ctx := context.Background()

		store, err := Open(path)
		if err != nil {
			t.Fatalf("failed to open file store: %v", err)
		}
		if _, err := store.Record(ctx, Entry{URL: "https://genius.com/a", Status: StatusOK}); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
		_ = store.Close()

		store, err = Open(path)
		if err != nil {
			t.Fatalf("failed to reopen file store: %v", err)
		}
		defer func() { _ = store.Close() }()

		entries, err := store.Recent(ctx, 0, false)
		if err != nil {
			t.Fatalf("failed to read entries: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry after reopen, got %d", len(entries))
		}
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"success", nil, StatusOK},
		{"denied", fmt.Errorf("%w: https://genius.com/x", genius.ErrAccessDenied), StatusDenied},
		{"no result", fmt.Errorf("%w: https://genius.com/x", genius.ErrNoResult), StatusNoResult},
		{"invalid", genius.ErrInvalidArgument, StatusInvalid},
		{"transport", &genius.TransportError{URL: "u", StatusCode: 500}, StatusFailed},
		{"other", errors.New("boom"), StatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	entries := []Entry{
		{URL: "https://genius.com/one", Title: "One", Artist: "A", Status: StatusOK, Chars: 120, FetchedAt: base},
		{URL: "https://genius.com/two", Title: "Two", Artist: "B", Status: StatusDenied, Error: "genius: access denied", FetchedAt: base.Add(time.Minute)},
		{URL: "https://genius.com/three", Status: StatusNoResult, Error: "genius: no result", FetchedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		id, err := store.Record(ctx, e)
		if err != nil {
			t.Fatalf("failed to record %s: %v", e.URL, err)
		}
		if id <= 0 {
			t.Errorf("expected positive id, got %d", id)
		}
	}

	all, err := store.Recent(ctx, 0, false)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].URL != "https://genius.com/three" {
		t.Errorf("expected newest first, got %s", all[0].URL)
	}
	if all[2].Chars != 120 || all[2].Title != "One" {
		t.Errorf("expected first entry fields to round trip, got %+v", all[2])
	}
	if !all[1].FetchedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("expected fetched at %v, got %v", base.Add(time.Minute), all[1].FetchedAt)
	}

	failed, err := store.Recent(ctx, 0, true)
	if err != nil {
		t.Fatalf("failed to read failed entries: %v", err)
	}
	if len(failed) != 2 {
		t.Fatalf("expected 2 failed entries, got %d", len(failed))
	}
	for _, e := range failed {
		if e.Status == StatusOK {
			t.Errorf("expected only failures, got %+v", e)
		}
	}

	limited, err := store.Recent(ctx, 1, false)
	if err != nil {
		t.Fatalf("failed to read limited entries: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 entry, got %d", len(limited))
	}
}

func TestStore_RecordValidation(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, Entry{Status: StatusOK}); err == nil {
		t.Error("expected error for entry without URL")
	}
	if _, err := store.Record(ctx, Entry{URL: "https://genius.com/x"}); err == nil {
		t.Error("expected error for entry without status")
	}

	id, err := store.Record(ctx, Entry{URL: "https://genius.com/x", Status: StatusOK})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err := store.Recent(ctx, 0, false)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != id {
		t.Fatalf("expected recorded entry %d, got %+v", id, entries)
	}
	if time.Since(entries[0].FetchedAt) > time.Minute {
		t.Errorf("expected zero FetchedAt to default to now, got %v", entries[0].FetchedAt)
	}
}

func TestStore_Count(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for _, status := range []Status{StatusOK, StatusOK, StatusDenied, StatusFailed} {
		if _, err := store.Record(ctx, Entry{URL: "https://genius.com/x", Status: status}); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
	}

	counts, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if counts[StatusOK] != 2 || counts[StatusDenied] != 1 || counts[StatusFailed] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if counts[StatusNoResult] != 0 {
		t.Errorf("expected no no_result entries, got %d", counts[StatusNoResult])
	}
}

func TestStore_Prune(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	now := time.Now()

	ages := []time.Duration{48 * time.Hour, 36 * time.Hour, time.Hour, 0}
	for i, age := range ages {
		e := Entry{URL: fmt.Sprintf("https://genius.com/%d", i), Status: StatusOK, FetchedAt: now.Add(-age)}
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
	}

	deleted, err := store.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("failed to prune: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 deleted entries, got %d", deleted)
	}

	remaining, err := store.Recent(ctx, 0, false)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(remaining) != 2 {
		t.Errorf("expected 2 remaining entries, got %d", len(remaining))
	}

	if _, err := store.Prune(ctx, 0); err == nil {
		t.Error("expected error for zero max age")
	}
}

func TestStore_ConcurrentRecord(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	const workers = 10
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			_, err := store.Record(ctx, Entry{URL: fmt.Sprintf("https://genius.com/%d", i), Status: StatusOK})
			errs <- err
		}(i)
	}
	for i := 0; i < workers; i++ {
		if err := <-errs; err != nil {
			t.Errorf("concurrent record failed: %v", err)
		}
	}

	counts, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("failed to count: %v", err)
	}
	if counts[StatusOK] != workers {
		t.Errorf("expected %d entries, got %d", workers, counts[StatusOK])
	}
}
