// Package vector implements the numeric core of churnlens: L2
// normalisation of embedding vectors and exact inner-product similarity
// search over a flat, immutable in-memory index.
//
// Approximate structures are deliberately out of scope. The corpora this
// tool targets are bounded and in-memory, and brute-force search keeps
// the results deterministic and trivially auditable.
package vector
