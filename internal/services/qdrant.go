package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

const (
	payloadAnalysisID   = "analysis_id"
	payloadFilename     = "filename"
	payloadJobName      = "job_name"
	payloadOverallScore = "overall_score"
)

// ResumePoint is what the vector store keeps per completed analysis.
type ResumePoint struct {
	AnalysisID   uuid.UUID
	Filename     string
	JobName      string
	OverallScore float64
	Embedding    []float32
}

type SearchResult struct {
	AnalysisID uuid.UUID
	Filename   string
	Score      float32
}

type VectorStore interface {
	InitCollection(ctx context.Context) error
	Upsert(ctx context.Context, point ResumePoint) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error)
	DeleteAnalysis(ctx context.Context, analysisID uuid.UUID) error
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantService(urlStr, apiKey, collectionName string, log *zap.Logger) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   parsed.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: parsed.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     embedDimensions,
		logger:         log,
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantService) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Info("✅ Collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("✅ Qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// pointID uses the full analysis uuid, so re-indexing an analysis overwrites
// only its own vector.
func pointID(id uuid.UUID) *qdrant.PointId {
	return qdrant.NewID(id.String())
}

// Upsert implements VectorStore.
func (q *qdrantService) Upsert(ctx context.Context, p ResumePoint) error {
	point := &qdrant.PointStruct{
		Id:      pointID(p.AnalysisID),
		Vectors: qdrant.NewVectors(p.Embedding...),
		Payload: qdrant.NewValueMap(map[string]any{
			payloadAnalysisID:   p.AnalysisID.String(),
			payloadFilename:     p.Filename,
			payloadJobName:      p.JobName,
			payloadOverallScore: p.OverallScore,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements VectorStore.
func (q *qdrantService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		id, err := uuid.Parse(payloadString(point.Payload, payloadAnalysisID))
		if err != nil {
			q.logger.Warn("⚠️ skipping point without analysis id", zap.Error(err))
			continue
		}

		results = append(results, SearchResult{
			AnalysisID: id,
			Filename:   payloadString(point.Payload, payloadFilename),
			Score:      point.Score,
		})
	}

	return results, nil
}

// DeleteAnalysis implements VectorStore.
func (q *qdrantService) DeleteAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch(payloadAnalysisID, analysisID.String()),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete analysis vector: %w", err)
	}

	return nil
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	if s, ok := v.GetKind().(*qdrant.Value_StringValue); ok {
		return s.StringValue
	}
	return ""
}
