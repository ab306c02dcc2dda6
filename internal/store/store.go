// Package store provides the "record store" collaborator: persistence for
// synthesized patterns and the verification reports run against them. It is
// ambient infrastructure, entirely outside the Core's synchronous, no-I/O
// contract — grounded on the teacher's internal/app.State, which guards its
// in-memory project state the same way (sync.RWMutex around a plain struct).
package store

import (
	"context"
	"time"

	"github.com/development-nine-hawks/cdp/pkg/geometry"
)

// PatternRecord wraps a synthesized pattern with the bookkeeping fields a
// real deployment needs but the Core does not: a stable ID, an operator-
// assigned serial number, a free-text label, and a creation timestamp. The
// fields of the Core's Descriptor (seed, size, derived params) are copied in
// as flat fields, alongside the four marker centres.
type PatternRecord struct {
	ID            string
	Seed          int32
	PatternSize   int
	BaseFreq      float64
	ModFreq       float64
	ModDepth      float64
	MarkerCentres [4]geometry.Point2D
	SerialNumber  string
	Label         string
	Notes         string
	CreatedAt     time.Time
}

// VerificationRecord wraps one Verify call's outcome together with the
// pattern it was checked against.
type VerificationRecord struct {
	ID              string
	PatternID       string
	Verdict         string
	Confidence      float64
	Moire           float64
	Color           float64
	Correlation     float64
	Gradient        float64
	MarkersFound    int
	AlignmentMethod string
	PatternFound    bool
	CheckedAt       time.Time
}

// PatternStore persists PatternRecords.
type PatternStore interface {
	Put(ctx context.Context, rec PatternRecord) error
	Get(ctx context.Context, id string) (PatternRecord, bool, error)
	List(ctx context.Context) ([]PatternRecord, error)
	Delete(ctx context.Context, id string) error
}

// VerificationStore persists VerificationRecords.
type VerificationStore interface {
	Put(ctx context.Context, rec VerificationRecord) error
	Get(ctx context.Context, id string) (VerificationRecord, bool, error)
	List(ctx context.Context) ([]VerificationRecord, error)
	Delete(ctx context.Context, id string) error
}
