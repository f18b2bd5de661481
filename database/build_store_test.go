package database

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *BuildStore {
	t.Helper()
	store := NewBuildStore(setupTestDB(t))
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	calls := 0
	store.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return store
}

func sampleBuild() *Build {
	return &Build{
		PlanPath: "plans/gpec.json",
		Output:   "out/gpec.pptx",
		Title:    "GPEC 2026",
		Slides:   21,
		Layouts:  []string{"title", "agenda", "kpi_dashboard"},
		Bytes:    48213,
		Duration: 1250 * time.Millisecond,
		Language: "fr",
	}
}

func TestBuildStore_RecordAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b := sampleBuild()
	b.Handout = "out/gpec.pdf"
	if err := store.Record(ctx, b); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if b.ID == "" {
		t.Fatal("Expected ID to be generated")
	}
	if b.CreatedAt.IsZero() {
		t.Fatal("Expected CreatedAt to be set")
	}

	got, err := store.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.CreatedAt.Equal(b.CreatedAt) {
		t.Errorf("CreatedAt mismatch: got %v, want %v", got.CreatedAt, b.CreatedAt)
	}
	got.CreatedAt = b.CreatedAt
	if !reflect.DeepEqual(got, b) {
		t.Errorf("Get mismatch:\n got  %+v\n want %+v", got, b)
	}
	if got.PreviewDir != "" {
		t.Errorf("Expected empty preview dir, got %q", got.PreviewDir)
	}
}

func TestBuildStore_RecordRequiresOutput(t *testing.T) {
	store := newTestStore(t)
	b := sampleBuild()
	b.Output = ""
	if err := store.Record(context.Background(), b); err == nil {
		t.Error("Expected error for missing output")
	}
}

func TestBuildStore_ListMostRecentFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		b := sampleBuild()
		b.Slides = i + 1
		if err := store.Record(ctx, b); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
		ids = append(ids, b.ID)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 builds, got %d", len(all))
	}
	for i, b := range all {
		if b.ID != ids[2-i] {
			t.Errorf("position %d: got %s, want %s", i, b.ID, ids[2-i])
		}
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) failed: %v", err)
	}
	if len(limited) != 2 || limited[0].Slides != 3 {
		t.Errorf("Unexpected limited list: %+v", limited)
	}
}

func TestBuildStore_ListEmpty(t *testing.T) {
	store := newTestStore(t)
	builds, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(builds) != 0 {
		t.Errorf("Expected no builds, got %d", len(builds))
	}
}

func TestBuildStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b := sampleBuild()
	if err := store.Record(ctx, b); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, b.ID); !errors.Is(err, ErrBuildNotFound) {
		t.Errorf("Expected ErrBuildNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, b.ID); !errors.Is(err, ErrBuildNotFound) {
		t.Errorf("Expected ErrBuildNotFound deleting twice, got %v", err)
	}
}
