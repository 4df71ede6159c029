package geom

import "math"

// Band restricts candidate lines to |slope| in [Lo*max, Hi*max], where max
// is the steepest local slope of the curve.
type Band struct {
	Lo float64
	Hi float64
}

// refinePasses bounds how often the inlier run is regrown from the refit.
const refinePasses = 4

// LineArea is the straight portion of a curve found by [FindLineArea].
type LineArea struct {
	Line
	// Start and End are the first and last sample indices (inclusive) of
	// the contiguous run the line was refit on.
	Start int
	End   int
	// Anchor is the centre sample of the winning local window.
	Anchor int
	// Inliers counts all samples within the tolerance band of the local line.
	Inliers int
}

// FindLineArea locates the dominant straight segment of the sampled curve
// (x, y).
//
// For every window of `window` consecutive samples a local least-squares
// line is fitted. Only local lines whose absolute slope lies inside band
// (relative to the steepest local slope) are candidates. A candidate's
// inlier threshold is tolerance * |slope| * step, step being the mean
// sample spacing of its window, so the band scales with how steep the line
// is. The candidate with the most samples (over the whole curve) inside
// its threshold wins; ties go to the lowest index. The winner is then
// refit over the contiguous run of inliers around its window, and the run
// is grown again from the refit line a few times so that samples which
// only the local line tolerated drop out.
//
// ok is false when the input is too short, a window cannot be fitted, or
// the curve has no slope at all.
func FindLineArea(x, y []float64, tolerance float64, window int, band Band) (LineArea, bool) {
	n := len(x)
	if n != len(y) || window < 2 || n < window || tolerance <= 0 {
		return LineArea{}, false
	}

	half := window / 2
	count := n - window + 1
	local := make([]Line, count)
	fitted := make([]bool, count)

	maxSlope := 0.0
	for k := 0; k < count; k++ {
		l, ok := FitLine(x[k:k+window], y[k:k+window])
		if !ok {
			continue
		}
		local[k], fitted[k] = l, true
		if s := math.Abs(l.A); s > maxSlope {
			maxSlope = s
		}
	}
	if maxSlope == 0 || math.IsNaN(maxSlope) || math.IsInf(maxSlope, 0) {
		return LineArea{}, false
	}

	const eps = 1e-12
	lo := band.Lo*maxSlope - eps*maxSlope
	hi := band.Hi*maxSlope + eps*maxSlope

	best := -1
	bestCount := -1
	var bestThreshold float64
	for k := 0; k < count; k++ {
		if !fitted[k] {
			continue
		}
		s := math.Abs(local[k].A)
		if s < lo || s > hi {
			continue
		}
		step := (x[k+window-1] - x[k]) / float64(window-1)
		threshold := tolerance * s * math.Abs(step)

		inliers := 0
		for j := range x {
			if math.Abs(y[j]-local[k].At(x[j])) <= threshold {
				inliers++
			}
		}
		if inliers > bestCount {
			best, bestCount, bestThreshold = k, inliers, threshold
		}
	}
	if best < 0 {
		return LineArea{}, false
	}

	line := local[best]
	start, end := best, best+window-1
	for pass := 0; pass < refinePasses; pass++ {
		start, end = best, best+window-1
		for start > 0 && math.Abs(y[start-1]-line.At(x[start-1])) <= bestThreshold {
			start--
		}
		for end < n-1 && math.Abs(y[end+1]-line.At(x[end+1])) <= bestThreshold {
			end++
		}

		refit, ok := FitLine(x[start:end+1], y[start:end+1])
		if !ok {
			break
		}
		line = refit
	}

	return LineArea{
		Line:    line,
		Start:   start,
		End:     end,
		Anchor:  best + half,
		Inliers: bestCount,
	}, true
}
