package recommend

import "math"

// Blend ratio for the hybrid query vector: long-run playtime taste vs
// feedback-derived taste.
const (
	PreferenceBlendWeight = 0.6
	LearnedBlendWeight    = 0.4
)

// FeedbackWeight is the signed nudge applied to the learned vector per
// feedback event. Negative signals are deliberately stronger than positive
// ones: an explicit "not interested" should suppress harder than a "like"
// promotes.
var FeedbackWeight = map[string]float64{
	"love":           0.15,
	"like":           0.10,
	"dislike":        -0.20,
	"not_interested": -0.30,
}

// Normalize scales v to unit L2 length in place and returns it. A
// zero-magnitude vector is passed through unchanged; dividing by zero here
// would poison every downstream similarity query with NaN.
func Normalize(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return v
	}
	magnitude := math.Sqrt(sumSquares)
	for i := range v {
		v[i] = float32(float64(v[i]) / magnitude)
	}
	return v
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float64 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	return math.Sqrt(sumSquares)
}

// Dot returns the dot product of a and b. Accumulates in float64; repeated
// normalization is numerically sensitive.
func Dot(a, b []float32) float64 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot
}

// Cosine returns the cosine similarity between a and b, 0 when either is
// zero-magnitude.
func Cosine(a, b []float32) float64 {
	denom := Norm(a) * Norm(b)
	if denom == 0 {
		return 0
	}
	return Dot(a, b) / denom
}

// Blend returns normalize(wa*a + wb*b) as a new vector.
func Blend(a, b []float32, wa, wb float64) []float32 {
	out := make([]float32, len(a))
	for i := range a {
		out[i] = float32(wa*float64(a[i]) + wb*float64(b[i]))
	}
	return Normalize(out)
}

// Nudge returns normalize(base + delta*w) as a new vector. This is the
// learned-vector update step for a single feedback event.
func Nudge(base, delta []float32, w float64) []float32 {
	out := make([]float32, len(base))
	for i := range base {
		out[i] = float32(float64(base[i]) + float64(delta[i])*w)
	}
	return Normalize(out)
}
