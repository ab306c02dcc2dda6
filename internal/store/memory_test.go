package store

import (
	"context"
	"testing"
	"time"
)

func TestMemoryPatternStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryPatternStore()

	rec := PatternRecord{ID: "p1", Seed: 42, PatternSize: 512, CreatedAt: time.Now()}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected record to be found")
	}
	if got.Seed != 42 {
		t.Errorf("got Seed %d, want 42", got.Seed)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}

	if err := s.Delete(ctx, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "p1"); ok {
		t.Error("expected record to be gone after Delete")
	}
}

func TestMemoryPatternStoreRejectsEmptyID(t *testing.T) {
	s := NewMemoryPatternStore()
	if err := s.Put(context.Background(), PatternRecord{}); err == nil {
		t.Error("expected an error putting a record with an empty ID")
	}
}

func TestMemoryVerificationStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryVerificationStore()

	rec := VerificationRecord{ID: "v1", PatternID: "p1", Verdict: "AUTHENTIC", Confidence: 0.9, CheckedAt: time.Now()}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || got.Verdict != "AUTHENTIC" {
		t.Errorf("got %+v, ok=%v", got, ok)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list))
	}

	if err := s.Delete(ctx, "v1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "v1"); ok {
		t.Error("expected record to be gone after Delete")
	}
}
