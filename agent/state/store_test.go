package state

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/rentalops/booking-agent/agent/contract"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	snap := NewSnapshot(nil, validTemplates(), contractx.AnalyzerDeterministic, 3, time.Now())

	if err := store.Save(ctx, "ws-1", snap); err != nil {
		t.Fatalf("Save returned %v", err)
	}

	got, err := store.Load(ctx, "ws-1")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if got != snap {
		t.Fatal("Load returned a different snapshot pointer than Save stored")
	}
}

func TestMemoryStoreSaveReplacesWholeSnapshot(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	first := NewSnapshot(nil, validTemplates(), contractx.AnalyzerDeterministic, 3, time.Now())
	if err := store.Save(ctx, "ws-1", first); err != nil {
		t.Fatalf("Save returned %v", err)
	}

	held, err := store.Load(ctx, "ws-1")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}

	second := NewSnapshot(first, validTemplates(), contractx.AnalyzerRemote, 6, time.Now())
	if err := store.Save(ctx, "ws-1", second); err != nil {
		t.Fatalf("Save returned %v", err)
	}

	// A reader that loaded before the replacement keeps its consistent view.
	if held.Version != 1 {
		t.Fatalf("held snapshot Version = %d, want 1", held.Version)
	}

	got, err := store.Load(ctx, "ws-1")
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if got.Version != 2 {
		t.Fatalf("Version after replacement = %d, want 2", got.Version)
	}
}

func TestMemoryStoreSaveValidates(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	bad := &TemplateSnapshot{Version: 0}

	if err := store.Save(context.Background(), "ws-1", bad); err == nil {
		t.Fatal("Save accepted an invalid snapshot")
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()

	if _, err := store.Load(context.Background(), "nope"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("Load error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	snap := NewSnapshot(nil, validTemplates(), contractx.AnalyzerDeterministic, 3, time.Now())

	if err := store.Save(ctx, "ws-1", snap); err != nil {
		t.Fatalf("Save returned %v", err)
	}
	if err := store.Delete(ctx, "ws-1"); err != nil {
		t.Fatalf("Delete returned %v", err)
	}
	if _, err := store.Load(ctx, "ws-1"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("Load after Delete error = %v, want ErrSnapshotNotFound", err)
	}
}

func TestMemoryStoreEmptyWorkspace(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	snap := NewSnapshot(nil, nil, contractx.AnalyzerDeterministic, 0, time.Now())

	if _, err := store.Load(ctx, ""); !errors.Is(err, ErrInvalidWorkspace) {
		t.Fatalf("Load error = %v, want ErrInvalidWorkspace", err)
	}
	if err := store.Save(ctx, "", snap); !errors.Is(err, ErrInvalidWorkspace) {
		t.Fatalf("Save error = %v, want ErrInvalidWorkspace", err)
	}
	if err := store.Delete(ctx, ""); !errors.Is(err, ErrInvalidWorkspace) {
		t.Fatalf("Delete error = %v, want ErrInvalidWorkspace", err)
	}
}
