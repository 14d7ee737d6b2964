package retriever

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statementsearch/server/catalog/statements"
	"github.com/statementsearch/server/internal/embedder"
	"github.com/statementsearch/server/internal/vectorindex"
)

type fakeEncoder struct {
	vector []float32
	err    error
	calls  int
	lastQ  string
}

func (f *fakeEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	f.calls++
	f.lastQ = text

	if f.err != nil {
		return nil, f.err
	}

	return f.vector, nil
}

type fakeIndex struct {
	neighbors []vectorindex.Neighbor
	err       error
	calls     int
	lastK     int
}

func (f *fakeIndex) NearestNeighbors(_ context.Context, _ []float32, k int) ([]vectorindex.Neighbor, error) {
	f.calls++
	f.lastK = k

	if f.err != nil {
		return nil, f.err
	}

	if len(f.neighbors) > k {
		return f.neighbors[:k], nil
	}

	return f.neighbors, nil
}

type fakeStore struct {
	records map[string]statements.Statement
	err     error
	calls   int
	lastIDs []string
}

func (f *fakeStore) GetByIDs(_ context.Context, ids []string) (map[string]statements.Statement, error) {
	f.calls++
	f.lastIDs = ids

	if f.err != nil {
		return nil, f.err
	}

	result := make(map[string]statements.Statement, len(ids))

	for _, id := range ids {
		if rec, ok := f.records[id]; ok {
			result[id] = rec
		}
	}

	return result, nil
}

func record(id string) statements.Statement {
	return statements.Statement{StatementID: id, Title: "title " + id}
}

func recordsFor(ids ...string) map[string]statements.Statement {
	m := make(map[string]statements.Statement, len(ids))
	for _, id := range ids {
		m[id] = record(id)
	}

	return m
}

func newTestClient(t *testing.T, enc *fakeEncoder, idx *fakeIndex, store *fakeStore) *Client {
	t.Helper()

	client, err := NewClient(enc, idx, store, DefaultConfig())
	require.NoError(t, err)

	return client
}

func TestNewClientRequiresCollaborators(t *testing.T) {
	enc := &fakeEncoder{vector: []float32{0.1}}
	idx := &fakeIndex{}
	store := &fakeStore{}

	_, err := NewClient(nil, idx, store, DefaultConfig())
	assert.Error(t, err)

	_, err = NewClient(enc, nil, store, DefaultConfig())
	assert.Error(t, err)

	_, err = NewClient(enc, idx, nil, DefaultConfig())
	assert.Error(t, err)

	_, err = NewClient(enc, idx, store, Config{DefaultTopK: 0, DistanceThreshold: 1.8})
	assert.Error(t, err)

	_, err = NewClient(enc, idx, store, Config{DefaultTopK: 5, DistanceThreshold: 0})
	assert.Error(t, err)

	client, err := NewClient(enc, idx, store, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 5, client.DefaultTopK())
}

func TestSearchTopKValidation(t *testing.T) {
	tests := []struct {
		name    string
		topK    int
		wantErr bool
	}{
		{name: "zero rejected", topK: 0, wantErr: true},
		{name: "negative rejected", topK: -3, wantErr: true},
		{name: "above max rejected", topK: 151, wantErr: true},
		{name: "lower bound accepted", topK: 1, wantErr: false},
		{name: "upper bound accepted", topK: 150, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := &fakeEncoder{vector: []float32{0.1, 0.2}}
			idx := &fakeIndex{neighbors: []vectorindex.Neighbor{{StatementID: "PS001", Distance: 0.4}}}
			store := &fakeStore{records: recordsFor("PS001")}
			client := newTestClient(t, enc, idx, store)

			hits, err := client.Search(context.Background(), "water management", tt.topK)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTopK)
				// cheap-reject: no encoding or index work happened
				assert.Zero(t, enc.calls)
				assert.Zero(t, idx.calls)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.topK, idx.lastK)
			assert.LessOrEqual(t, len(hits), tt.topK)
		})
	}
}

func TestSearchOrderingAndThreshold(t *testing.T) {
	enc := &fakeEncoder{vector: []float32{0.1, 0.2}}
	idx := &fakeIndex{neighbors: []vectorindex.Neighbor{
		{StatementID: "PS001", Distance: 0.35},
		{StatementID: "PS002", Distance: 0.90},
		{StatementID: "PS003", Distance: 1.79},
		{StatementID: "PS004", Distance: 1.80}, // at cutoff, must be dropped
		{StatementID: "PS005", Distance: 2.50},
	}}
	store := &fakeStore{records: recordsFor("PS001", "PS002", "PS003", "PS004", "PS005")}
	client := newTestClient(t, enc, idx, store)

	hits, err := client.Search(context.Background(), "smart irrigation", 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	// distances carried through unmodified, in ascending order
	assert.Equal(t, []string{"PS001", "PS002", "PS003"},
		[]string{hits[0].StatementID, hits[1].StatementID, hits[2].StatementID})
	assert.Equal(t, float32(0.35), hits[0].Distance)
	assert.Equal(t, float32(1.79), hits[2].Distance)

	for i := range len(hits) - 1 {
		assert.LessOrEqual(t, hits[i].Distance, hits[i+1].Distance)
	}

	for _, hit := range hits {
		assert.Less(t, hit.Distance, float32(1.8))
		assert.Equal(t, hit.StatementID, hit.Record.StatementID)
	}
}

func TestSearchMissingRecordIsSkipped(t *testing.T) {
	enc := &fakeEncoder{vector: []float32{0.1}}
	idx := &fakeIndex{neighbors: []vectorindex.Neighbor{
		{StatementID: "PS001", Distance: 0.2},
		{StatementID: "PS404", Distance: 0.3}, // in index, not in catalog
		{StatementID: "PS002", Distance: 0.4},
	}}
	store := &fakeStore{records: recordsFor("PS001", "PS002")}
	client := newTestClient(t, enc, idx, store)

	hits, err := client.Search(context.Background(), "rural healthcare", 5)
	require.NoError(t, err)

	// the orphaned id is dropped without a placeholder, everything else
	// stays in order
	require.Len(t, hits, 2)
	assert.Equal(t, "PS001", hits[0].StatementID)
	assert.Equal(t, "PS002", hits[1].StatementID)
}

func TestSearchEmptyOutcomes(t *testing.T) {
	t.Run("index returns nothing", func(t *testing.T) {
		enc := &fakeEncoder{vector: []float32{0.1}}
		idx := &fakeIndex{neighbors: nil}
		store := &fakeStore{records: recordsFor("PS001")}
		client := newTestClient(t, enc, idx, store)

		hits, err := client.Search(context.Background(), "quantum blockchain", 5)
		require.NoError(t, err)
		assert.NotNil(t, hits)
		assert.Empty(t, hits)
		assert.Zero(t, store.calls, "no survivors, no lookup")
	})

	t.Run("all neighbors beyond threshold", func(t *testing.T) {
		enc := &fakeEncoder{vector: []float32{0.1}}
		idx := &fakeIndex{neighbors: []vectorindex.Neighbor{
			{StatementID: "PS001", Distance: 1.8},
			{StatementID: "PS002", Distance: 1.95},
		}}
		store := &fakeStore{records: recordsFor("PS001", "PS002")}
		client := newTestClient(t, enc, idx, store)

		hits, err := client.Search(context.Background(), "unrelated topic", 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
		assert.Zero(t, store.calls)
	})
}

func TestSearchSingleBatchedLookup(t *testing.T) {
	neighbors := make([]vectorindex.Neighbor, 150)
	ids := make([]string, 150)

	for i := range neighbors {
		id := "PS" + string(rune('A'+i%26)) + string(rune('A'+i/26))
		neighbors[i] = vectorindex.Neighbor{StatementID: id, Distance: float32(i) / 100}
		ids[i] = id
	}

	enc := &fakeEncoder{vector: []float32{0.1}}
	idx := &fakeIndex{neighbors: neighbors}
	store := &fakeStore{records: recordsFor(ids...)}
	client := newTestClient(t, enc, idx, store)

	hits, err := client.Search(context.Background(), "everything", 150)
	require.NoError(t, err)

	// one round-trip to the store regardless of result-set size
	assert.Equal(t, 1, store.calls)
	assert.Len(t, store.lastIDs, 150)
	assert.Len(t, hits, 150)
}

func TestSearchEmptyQueryIsEncoded(t *testing.T) {
	enc := &fakeEncoder{vector: []float32{0.0, 0.0}}
	idx := &fakeIndex{neighbors: nil}
	store := &fakeStore{}
	client := newTestClient(t, enc, idx, store)

	_, err := client.Search(context.Background(), "", 5)
	require.NoError(t, err)

	// empty text is a valid encodable input, not special-cased
	assert.Equal(t, 1, enc.calls)
	assert.Equal(t, "", enc.lastQ)
}

func TestSearchCollaboratorFailures(t *testing.T) {
	t.Run("encoder failure propagates", func(t *testing.T) {
		enc := &fakeEncoder{err: embedder.ErrModelUnavailable}
		idx := &fakeIndex{}
		store := &fakeStore{}
		client := newTestClient(t, enc, idx, store)

		_, err := client.Search(context.Background(), "anything", 5)
		require.ErrorIs(t, err, embedder.ErrModelUnavailable)
		assert.Zero(t, idx.calls)
	})

	t.Run("index failure propagates", func(t *testing.T) {
		enc := &fakeEncoder{vector: []float32{0.1}}
		idx := &fakeIndex{err: vectorindex.ErrIndexUnavailable}
		store := &fakeStore{}
		client := newTestClient(t, enc, idx, store)

		_, err := client.Search(context.Background(), "anything", 5)
		require.ErrorIs(t, err, vectorindex.ErrIndexUnavailable)
		assert.Zero(t, store.calls)
	})

	t.Run("dimension mismatch propagates", func(t *testing.T) {
		enc := &fakeEncoder{vector: []float32{0.1}}
		idx := &fakeIndex{err: vectorindex.ErrDimensionMismatch}
		store := &fakeStore{}
		client := newTestClient(t, enc, idx, store)

		_, err := client.Search(context.Background(), "anything", 5)
		require.ErrorIs(t, err, vectorindex.ErrDimensionMismatch)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		enc := &fakeEncoder{vector: []float32{0.1}}
		idx := &fakeIndex{neighbors: []vectorindex.Neighbor{{StatementID: "PS001", Distance: 0.2}}}
		store := &fakeStore{err: context.DeadlineExceeded}
		client := newTestClient(t, enc, idx, store)

		_, err := client.Search(context.Background(), "anything", 5)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("RETRIEVAL_TOP_K", "12")
	t.Setenv("RETRIEVAL_DISTANCE_THRESHOLD", "0.9")

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, config.DefaultTopK)
	assert.Equal(t, float32(0.9), config.DistanceThreshold)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "top_k not a number", key: "RETRIEVAL_TOP_K", value: "five"},
		{name: "top_k below range", key: "RETRIEVAL_TOP_K", value: "0"},
		{name: "top_k above range", key: "RETRIEVAL_TOP_K", value: "151"},
		{name: "threshold not a number", key: "RETRIEVAL_DISTANCE_THRESHOLD", value: "high"},
		{name: "threshold negative", key: "RETRIEVAL_DISTANCE_THRESHOLD", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
