package domain

// RetrievedDocument is a single similarity hit: a corpus document with
// its inner-product score against the query vector.
type RetrievedDocument struct {
	// Position is the document's positional identifier.
	Position int

	// Score is the inner product of the query and document vectors.
	// Both are unit-normalised, so this equals cosine similarity.
	Score float64

	// Document is the matched document.
	Document Document

	// Metadata is the matched document's labels.
	Metadata Metadata
}

// QueryResult is the outcome of a retrieval-augmented question.
// Context and Hits are populated even when answer generation fails,
// so the caller may fall back to showing the retrieved context.
type QueryResult struct {
	// Question is the question as asked.
	Question string

	// Answer is the generated answer text. Empty when generation
	// was unavailable.
	Answer string

	// Context is the retrieved documents joined in search order.
	// Empty when the corpus is empty or k was zero.
	Context string

	// Hits are the top-k retrieved documents in descending score order.
	Hits []RetrievedDocument
}
