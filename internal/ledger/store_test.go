package ledger_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"xmlcreator/internal/ledger"
)

func openStore(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(context.Background(), filepath.Join(t.TempDir(), "data", "ledger.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRunLifecycle(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	started := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	if err := store.BeginRun(ctx, "run-1", started); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	if err := store.RecordDescriptor(ctx, "run-1", ledger.Descriptor{
		Filename: "bg.mp4",
		UniqueID: "72b533c527d5dac2a37022a4062f32be",
		Path:     "/out/bg.xml",
	}); err != nil {
		t.Fatalf("RecordDescriptor failed: %v", err)
	}
	if err := store.RecordDelivery(ctx, "run-1", "/out/bg.xml", nil); err != nil {
		t.Fatalf("RecordDelivery failed: %v", err)
	}
	if err := store.FinishRun(ctx, ledger.Run{ID: "run-1", Status: ledger.StatusCompleted, Produced: 1, Delivered: 1}); err != nil {
		t.Fatalf("FinishRun failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.Status != ledger.StatusCompleted || run.Produced != 1 || run.Delivered != 1 {
		t.Fatalf("unexpected run: %#v", run)
	}
	if !run.StartedAt.Equal(started) {
		t.Fatalf("started_at = %v, want %v", run.StartedAt, started)
	}
	if run.FinishedAt.IsZero() {
		t.Fatal("expected finished_at to be set")
	}

	descriptors, err := store.DescriptorsByUniqueID(ctx, "72b533c527d5dac2a37022a4062f32be")
	if err != nil {
		t.Fatalf("DescriptorsByUniqueID failed: %v", err)
	}
	if len(descriptors) != 1 || descriptors[0].Filename != "bg.mp4" || descriptors[0].RunID != "run-1" {
		t.Fatalf("unexpected descriptors: %#v", descriptors)
	}
}

func TestFailedDeliveries(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.BeginRun(ctx, "run-2", time.Now()); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	_ = store.RecordDelivery(ctx, "run-2", "/out/a.xml", nil)
	_ = store.RecordDelivery(ctx, "run-2", "/out/b.xml", errors.New("550 denied"))

	failed, err := store.FailedDeliveries(ctx, "run-2")
	if err != nil {
		t.Fatalf("FailedDeliveries failed: %v", err)
	}
	if len(failed) != 1 || failed[0] != "/out/b.xml" {
		t.Fatalf("unexpected failed deliveries: %v", failed)
	}
}

func TestFinishUnknownRun(t *testing.T) {
	store := openStore(t)
	err := store.FinishRun(context.Background(), ledger.Run{ID: "missing", Status: ledger.StatusFailed})
	if err == nil {
		t.Fatal("expected error for unknown run")
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	first, err := ledger.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := first.BeginRun(ctx, "run-3", time.Now()); err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	_ = first.Close()

	second, err := ledger.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	runs, err := second.RecentRuns(ctx, 0)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Status != ledger.StatusRunning {
		t.Fatalf("unexpected runs after reopen: %#v", runs)
	}
}
