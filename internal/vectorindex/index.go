package vectorindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	// ErrIndexUnavailable indicates the vector index could not be reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrDimensionMismatch indicates the query vector's length disagrees with
	// the index's configured dimensionality.
	ErrDimensionMismatch = errors.New("query vector dimension mismatch")
)

// namespace for deriving deterministic point ids from statement ids.
// Qdrant point ids must be UUIDs or integers; statement ids are arbitrary
// strings, so the real id travels in the payload.
var pointNamespace = uuid.MustParse("7c9e4b52-31d8-44a6-9f0b-2d5a8c1e6f03")

const payloadStatementID = "statement_id"

// Index is the sole owner of all Qdrant operations.
type Index struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	collection  string
	dimension   int
}

// New creates an Index connected to Qdrant at the given gRPC address.
// The dimension is the fixed embedding dimensionality the collection holds.
func New(addr, collection string, dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dimension)
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to dial qdrant %s: %w", addr, err)
	}

	return &Index{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		collection:  collection,
		dimension:   dimension,
	}, nil
}

// Close closes the underlying gRPC connection.
func (i *Index) Close() error {
	return i.conn.Close()
}

// Dimension returns the configured embedding dimensionality.
func (i *Index) Dimension() int {
	return i.dimension
}

// Ping verifies the index is reachable and the collection exists.
func (i *Index) Ping(ctx context.Context) error {
	_, err := i.collections.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: i.collection,
	})
	if err != nil {
		return fmt.Errorf("%w: collection %s: %v", ErrIndexUnavailable, i.collection, err)
	}

	return nil
}

// NearestNeighbors returns up to k (id, distance) pairs for the query vector,
// ordered by ascending distance. The collection uses Euclidean distance, so
// the score Qdrant returns is carried through unmodified as the distance.
func (i *Index) NearestNeighbors(ctx context.Context, vector []float32, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	if len(vector) != i.dimension {
		return nil, fmt.Errorf("%w: got %d, index configured for %d", ErrDimensionMismatch, len(vector), i.dimension)
	}

	resp, err := i.points.Search(ctx, &pb.SearchPoints{
		CollectionName: i.collection,
		Vector:         vector,
		Limit:          uint64(k),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search failed: %v", ErrIndexUnavailable, err)
	}

	return neighborsFromPoints(resp.GetResult()), nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (i *Index) EnsureCollection(ctx context.Context) error {
	list, err := i.collections.List(ctx, &pb.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("%w: list collections: %v", ErrIndexUnavailable, err)
	}

	for _, c := range list.GetCollections() {
		if c.GetName() == i.collection {
			return nil
		}
	}

	_, err = i.collections.Create(ctx, &pb.CreateCollection{
		CollectionName: i.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     uint64(i.dimension),
					Distance: pb.Distance_Euclid,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", i.collection, err)
	}

	return nil
}

// DeleteCollection drops the collection. Used by the ingester's --clear flag.
func (i *Index) DeleteCollection(ctx context.Context) error {
	_, err := i.collections.Delete(ctx, &pb.DeleteCollection{
		CollectionName: i.collection,
	})
	if err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", i.collection, err)
	}

	return nil
}

// Upsert stores embedding entries into the index. Called by the ingester.
func (i *Index) Upsert(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, len(entries))

	for n, e := range entries {
		if len(e.Embedding) != i.dimension {
			return fmt.Errorf("%w: entry %s has %d, index configured for %d",
				ErrDimensionMismatch, e.StatementID, len(e.Embedding), i.dimension)
		}

		points[n] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: pointID(e.StatementID)},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{Data: e.Embedding},
				},
			},
			Payload: map[string]*pb.Value{
				payloadStatementID: {Kind: &pb.Value_StringValue{StringValue: e.StatementID}},
			},
		}
	}

	wait := true

	_, err := i.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: i.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert %d points: %w", len(entries), err)
	}

	return nil
}

// derives the deterministic point id for a statement id
func pointID(statementID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(statementID)).String()
}

// maps scored points to neighbors, preserving the index's ordering.
// Points without a statement_id payload are dropped - they cannot be joined
// against the catalog anyway.
func neighborsFromPoints(points []*pb.ScoredPoint) []Neighbor {
	neighbors := make([]Neighbor, 0, len(points))

	for _, p := range points {
		id := p.GetPayload()[payloadStatementID].GetStringValue()
		if id == "" {
			continue
		}

		neighbors = append(neighbors, Neighbor{
			StatementID: id,
			Distance:    p.GetScore(),
		})
	}

	return neighbors
}
