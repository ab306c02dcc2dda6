// Package cdp implements a copy-detection pattern (CDP) core: a
// deterministic synthesis pipeline that prints a unique per-copy pattern,
// and a verification pipeline that classifies a photographed capture of a
// printed pattern as authentic, suspicious, or counterfeit against the
// digital master it was printed from.
//
// The package is synchronous and pure over its inputs: Synthesize and
// Verify perform no I/O and hold no state between calls, in the same
// spirit as the teacher repository's alignment.AlignImages — callers own
// decoding, encoding, and persistence.
package cdp

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/development-nine-hawks/cdp/internal/align"
	"github.com/development-nine-hawks/cdp/internal/fiducial"
	"github.com/development-nine-hawks/cdp/internal/locate"
	"github.com/development-nine-hawks/cdp/internal/markers"
	"github.com/development-nine-hawks/cdp/internal/metrics"
	"github.com/development-nine-hawks/cdp/internal/synth"
	"github.com/development-nine-hawks/cdp/pkg/geometry"
	"github.com/development-nine-hawks/cdp/pkg/raster"
)

// DefaultPatternSize is the pattern side length used when a caller doesn't
// specify one.
const DefaultPatternSize = 512

// Descriptor is the logical identity of a synthesized pattern: its seed and
// the parameters deterministically derived from it.
type Descriptor struct {
	Seed        int32
	PatternSize int
	BaseFreq    float64
	ModFreq     float64
	ModDepth    float64
}

// AlignmentMethod names the geometric transform used to register a capture
// against its master.
type AlignmentMethod string

const (
	AlignmentPerspective AlignmentMethod = AlignmentMethod(align.MethodPerspective)
	AlignmentAffine      AlignmentMethod = AlignmentMethod(align.MethodAffine)
	AlignmentResize      AlignmentMethod = AlignmentMethod(align.MethodResize)
)

// Verdict classifies a Verify call's outcome.
type Verdict string

const (
	VerdictAuthentic   Verdict = Verdict(metrics.VerdictAuthentic)
	VerdictSuspicious  Verdict = Verdict(metrics.VerdictSuspicious)
	VerdictCounterfeit Verdict = Verdict(metrics.VerdictCounterfeit)
)

// Scores bundles the four independent statistical test scores, each in
// [0,1].
type Scores struct {
	Moire       float64
	Color       float64
	Correlation float64
	Gradient    float64
}

// Weights are the fixed contributions of each test to overall confidence.
type Weights struct {
	Moire       float64
	Color       float64
	Correlation float64
	Gradient    float64
}

// DefaultWeights are the weights Verify always uses; exported so callers
// can recompute or explain a confidence value.
var DefaultWeights = Weights{
	Moire:       metrics.Weights.Moire,
	Color:       metrics.Weights.Color,
	Correlation: metrics.Weights.Correlation,
	Gradient:    metrics.Weights.Gradient,
}

// VerificationReport is the outcome of Verify.
type VerificationReport struct {
	Verdict         Verdict
	Confidence      float64
	Scores          Scores
	Weights         Weights
	MarkersFound    int
	AlignmentMethod AlignmentMethod
	PatternFound    bool
}

var (
	// ErrInvalidMaster is returned when master is nil, empty, or
	// zero-dimensional.
	ErrInvalidMaster = fmt.Errorf("cdp: invalid master image")
	// ErrInvalidCapture is returned when capture is nil, empty, or
	// zero-dimensional.
	ErrInvalidCapture = fmt.Errorf("cdp: invalid capture image")
)

// Synthesize deterministically generates a pattern_size x pattern_size CDP
// from seed. If seed is nil, one is drawn uniformly from [0, 2^31) using
// crypto/rand and returned in the Descriptor.
func Synthesize(seed *int32, patternSize int) (Descriptor, raster.Image, error) {
	if patternSize <= 0 {
		patternSize = DefaultPatternSize
	}

	actualSeed, err := resolveSeed(seed)
	if err != nil {
		return Descriptor{}, raster.Image{}, err
	}

	img, err := synth.Generate(actualSeed, patternSize)
	if err != nil {
		return Descriptor{}, raster.Image{}, fmt.Errorf("cdp: synthesize: %w", err)
	}

	params := synth.DeriveParams(actualSeed)
	return Descriptor{
		Seed:        actualSeed,
		PatternSize: patternSize,
		BaseFreq:    params.BaseFreq,
		ModFreq:     params.ModFreq,
		ModDepth:    params.ModDepth,
	}, img, nil
}

func resolveSeed(seed *int32) (int32, error) {
	if seed != nil {
		return *seed, nil
	}
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("cdp: draw random seed: %w", err)
	}
	v := binary.BigEndian.Uint32(buf[:]) & 0x7fffffff // [0, 2^31)
	return int32(v), nil
}

// Verify classifies capture against master: it locates the printed pattern
// within capture, identifies its fiducial markers, registers it against
// master's coordinate frame, runs the four statistical tests, and returns
// their weighted verdict. Every edge case short of an invalid input
// (missing fiducials, poor contrast, a badly mis-registered capture)
// produces a valid, low-confidence report rather than an error.
func Verify(master, capture raster.Image) (VerificationReport, error) {
	if master.Empty() {
		return VerificationReport{}, ErrInvalidMaster
	}
	if capture.Empty() {
		return VerificationReport{}, ErrInvalidCapture
	}

	located, err := locate.Localise(capture)
	if err != nil {
		return VerificationReport{}, fmt.Errorf("cdp: localise: %w", err)
	}

	markerSet, err := fiducial.Detect(located.Image)
	if err != nil {
		return VerificationReport{}, fmt.Errorf("cdp: detect fiducials: %w", err)
	}

	aligned, method, err := align.Align(located.Image, markerSet, master.Width)
	if err != nil {
		return VerificationReport{}, fmt.Errorf("cdp: align: %w", err)
	}

	scores, err := metrics.Compute(aligned, master)
	if err != nil {
		return VerificationReport{}, fmt.Errorf("cdp: compute scores: %w", err)
	}

	confidence := scores.Confidence()
	if math.IsNaN(confidence) {
		confidence = 0
	}

	return VerificationReport{
		Verdict:    Verdict(metrics.VerdictFor(confidence)),
		Confidence: confidence,
		Scores: Scores{
			Moire:       scores.Moire,
			Color:       scores.Color,
			Correlation: scores.Correlation,
			Gradient:    scores.Gradient,
		},
		Weights:         DefaultWeights,
		MarkersFound:    markerSet.Count(),
		AlignmentMethod: AlignmentMethod(method),
		PatternFound:    located.Found,
	}, nil
}

// MarkerCentres returns the four logical marker centres in TL,TR,BL,BR
// order for a native-size pattern, for collaborators (e.g. the record
// store) that want to persist them alongside a Descriptor.
func MarkerCentres(patternSize int) [4]geometry.Point2D {
	var out [4]geometry.Point2D
	for i, c := range markers.All {
		p := markers.Centre(c, patternSize)
		out[i] = geometry.Point2D{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}
