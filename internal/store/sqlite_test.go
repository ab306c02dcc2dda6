package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/development-nine-hawks/cdp/pkg/geometry"
)

func TestSQLitePatternStoreCRUD(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "patterns.db")
	s, err := OpenSQLitePatternStore(dsn)
	if err != nil {
		t.Fatalf("OpenSQLitePatternStore: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	rec := PatternRecord{
		ID:           "p1",
		Seed:         7,
		PatternSize:  512,
		BaseFreq:     40,
		ModFreq:      4,
		ModDepth:     0.2,
		MarkerCentres: [4]geometry.Point2D{{X: 24, Y: 24}, {X: 488, Y: 24}, {X: 24, Y: 488}, {X: 488, Y: 488}},
		SerialNumber: "SN-1",
		Label:        "test",
		CreatedAt:    time.Now().Truncate(time.Second),
	}

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
	if got.Seed != 7 || got.SerialNumber != "SN-1" {
		t.Errorf("got %+v", got)
	}
	if got.MarkerCentres[3].X != 488 || got.MarkerCentres[3].Y != 488 {
		t.Errorf("marker centres round-trip failed: %+v", got.MarkerCentres)
	}

	// upsert via ON CONFLICT
	rec.Label = "updated"
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put (update): %v", err)
	}
	got2, _, err := s.Get(ctx, "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got2.Label != "updated" {
		t.Errorf("expected upsert to update label, got %q", got2.Label)
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

func TestSQLitePatternStoreGetMissingReturnsNotOk(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "patterns.db")
	s, err := OpenSQLitePatternStore(dsn)
	if err != nil {
		t.Fatalf("OpenSQLitePatternStore: %v", err)
	}
	defer s.Close()

	_, ok, err := s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected ok=false for a missing record")
	}
}

func TestEncodeDecodeCentresRoundTrip(t *testing.T) {
	pts := [4]geometry.Point2D{{X: 1.5, Y: 2.5}, {X: 3, Y: 4}, {X: -1, Y: 0}, {X: 100.25, Y: 200.75}}
	got := decodeCentres(encodeCentres(pts))
	for i := range pts {
		if got[i] != pts[i] {
			t.Errorf("point %d: got %+v, want %+v", i, got[i], pts[i])
		}
	}
}
