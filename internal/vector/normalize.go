package vector

import "math"

// normEpsilon keeps normalisation total for near-zero vectors. Dividing
// by (norm + epsilon) instead of raising trades a tiny numeric bias for
// unconditional availability; it is not a correctness guarantee for
// zero vectors.
const normEpsilon = 1e-12

// Normalize rescales v in place to unit L2 norm and returns it.
// The accumulation runs in float64 to avoid losing precision on
// high-dimensional vectors.
func Normalize(v []float32) []float32 {
	var sumSquares float64
	for _, c := range v {
		sumSquares += float64(c) * float64(c)
	}

	scale := 1.0 / (math.Sqrt(sumSquares) + normEpsilon)
	for i := range v {
		v[i] = float32(float64(v[i]) * scale)
	}
	return v
}

// NormalizeAll normalises every vector in place and returns the slice.
func NormalizeAll(vectors [][]float32) [][]float32 {
	for _, v := range vectors {
		Normalize(v)
	}
	return vectors
}
