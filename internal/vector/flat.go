package vector

import (
	"fmt"
	"sort"

	"github.com/churnlens/churnlens-cli/internal/core/domain"
)

// Hit is a single similarity result: a corpus position and its inner
// product against the query vector.
type Hit struct {
	// Position is the stored vector's positional identifier.
	Position int

	// Score is the inner product. On unit-normalised vectors this
	// equals cosine similarity.
	Score float64
}

// Flat is an exact inner-product similarity index over a contiguous set
// of vectors. It is immutable after construction, so concurrent reads
// need no locking. A new corpus requires a full rebuild.
type Flat struct {
	dim     int
	vectors [][]float32
}

// NewFlat builds an index over the given vectors, preserving positional
// order. The first vector fixes the index dimension; any later vector of
// a different length fails the build with domain.ErrDimensionMismatch.
// An empty vector set yields a valid, empty index of dimension zero.
func NewFlat(vectors [][]float32) (*Flat, error) {
	f := &Flat{vectors: vectors}
	if len(vectors) == 0 {
		return f, nil
	}

	f.dim = len(vectors[0])
	for i, v := range vectors {
		if len(v) != f.dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, index has %d",
				domain.ErrDimensionMismatch, i, len(v), f.dim)
		}
	}
	return f, nil
}

// Size returns the number of indexed vectors.
func (f *Flat) Size() int {
	return len(f.vectors)
}

// Dimension returns the index dimension. Zero for an empty index.
func (f *Flat) Dimension() int {
	return f.dim
}

// Search returns the top-k stored vectors by descending inner product
// against the query. Ties in score resolve to the lower position, so
// results are reproducible for identical inputs. k is clamped to the
// corpus size; k <= 0 returns an empty result. Complexity is O(n*d)
// per query plus the sort.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(f.vectors) > 0 && len(query) != f.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), f.dim)
	}
	if k <= 0 || len(f.vectors) == 0 {
		return []Hit{}, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	hits := make([]Hit, len(f.vectors))
	for i, v := range f.vectors {
		hits[i] = Hit{Position: i, Score: dot(query, v)}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})

	return hits[:k], nil
}

// dot accumulates in float64 for numeric stability on long vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
