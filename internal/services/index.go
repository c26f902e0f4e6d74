package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/parser"
)

var ErrIndexDisabled = errors.New("resume index is disabled")

const DefaultSimilarLimit = 5

// ResumeIndex makes completed analyses searchable by meaning.
type ResumeIndex interface {
	Index(ctx context.Context, analysis *models.Analysis) error
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
	Remove(ctx context.Context, analysisID uuid.UUID) error
	Enabled() bool
}

type resumeIndex struct {
	embedder Embedder
	store    VectorStore
	logger   *zap.Logger
}

func NewResumeIndex(embedder Embedder, store VectorStore, log *zap.Logger) ResumeIndex {
	if log == nil {
		log = zap.NewNop()
	}
	return &resumeIndex{embedder: embedder, store: store, logger: log}
}

func (r *resumeIndex) Enabled() bool { return true }

// Index embeds the analysis text. Analyses without a completed score are skipped.
func (r *resumeIndex) Index(ctx context.Context, a *models.Analysis) error {
	if a.Status != models.StatusCompleted || a.OverallScore == nil {
		return nil
	}

	text := indexText(a)
	if text == "" {
		return nil
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed analysis %s: %w", a.ID, err)
	}

	err = r.store.Upsert(ctx, ResumePoint{
		AnalysisID:   a.ID,
		Filename:     a.Filename,
		JobName:      a.JobName,
		OverallScore: *a.OverallScore,
		Embedding:    embedding,
	})
	if err != nil {
		return fmt.Errorf("failed to index analysis %s: %w", a.ID, err)
	}

	r.logger.Debug("🧭 analysis indexed", zap.String("analysis_id", a.ID.String()))
	return nil
}

func (r *resumeIndex) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return r.store.SearchSimilar(ctx, embedding, limit)
}

func (r *resumeIndex) Remove(ctx context.Context, analysisID uuid.UUID) error {
	return r.store.DeleteAnalysis(ctx, analysisID)
}

// indexText favours the extracted sections and falls back to the raw text.
// Placeholder sections are skipped, and an unreadable document yields "".
func indexText(a *models.Analysis) string {
	var parts []string
	for _, s := range []string{a.Skills, a.Experience, a.Education} {
		if s == parser.Unreadable {
			return ""
		}
		if s = strings.TrimSpace(s); s != "" && !parser.IsPlaceholder(s) {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(a.RawText)
	}
	return strings.Join(parts, "\n\n")
}

type disabledIndex struct{}

// NewDisabledIndex is used when INDEX_ENABLED is false.
func NewDisabledIndex() ResumeIndex { return disabledIndex{} }

func (disabledIndex) Enabled() bool { return false }
func (disabledIndex) Index(context.Context, *models.Analysis) error { return nil }
func (disabledIndex) Remove(context.Context, uuid.UUID) error { return nil }
func (disabledIndex) Search(context.Context, string, int) ([]SearchResult, error) {
	return nil, ErrIndexDisabled
}
