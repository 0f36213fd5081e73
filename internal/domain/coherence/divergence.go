package coherence

import "math"

// divergenceThreshold is the relative gap above which a declared figure is
// reported against its registry counterpart. The comparison is strict.
const divergenceThreshold = 0.5

// RelativeDivergence returns |a-b| / |b|, using b as the reference. A zero
// reference yields 0, so a zero registry value never triggers a divergence.
func RelativeDivergence(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return math.Abs(a-b) / math.Abs(b)
}

// diverges reports whether both figures are present, the reference is
// non-zero and the declared figure strays from it by more than the threshold.
func diverges(declared, reference *float64) (float64, bool) {
	if declared == nil || reference == nil || *reference == 0 {
		return 0, false
	}
	d := RelativeDivergence(*declared, *reference)
	return d, d > divergenceThreshold
}

// positive reports whether v is present and strictly greater than zero.
func positive(v *float64) bool {
	return v != nil && *v > 0
}
