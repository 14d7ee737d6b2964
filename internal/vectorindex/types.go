package vectorindex

// Neighbor is one nearest-neighbor match: a statement id and its distance to
// the query vector. Lower distance means more similar; the metric is whatever
// the collection was created with (Euclidean here).
type Neighbor struct {
	StatementID string
	Distance    float32
}

// Entry is one (id, embedding) pair persisted into the index.
type Entry struct {
	StatementID string
	Embedding   []float32
}
