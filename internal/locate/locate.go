// Package locate implements the pattern localiser (component F): given a
// capture that likely contains a dark-on-light pattern on a lighter
// background, it returns a rectified raster containing just the pattern.
// Two cascaded strategies are tried, grounded respectively on the teacher's
// contour-based corner extraction (internal/alignment/corners.go) and its
// Hough-circle fallback (internal/via/detector.go).
package locate

import "github.com/development-nine-hawks/cdp/pkg/raster"

// Result is the outcome of localisation.
type Result struct {
	Image   raster.Image
	Found   bool
}

// Localise runs the contour strategy, falls back to the marker-cluster
// strategy, and finally returns the unmodified capture with Found=false if
// neither succeeds.
func Localise(capture raster.Image) (Result, error) {
	if rectified, ok, err := contourStrategy(capture); err != nil {
		return Result{}, err
	} else if ok {
		return Result{Image: rectified, Found: true}, nil
	}

	if rectified, ok, err := clusterStrategy(capture); err != nil {
		return Result{}, err
	} else if ok {
		return Result{Image: rectified, Found: true}, nil
	}

	return Result{Image: capture, Found: false}, nil
}
