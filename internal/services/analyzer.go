package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/criteria"
	"alfredoptarigan/cv-analyzer/internal/extractor"
	"alfredoptarigan/cv-analyzer/internal/jobmatch"
	"alfredoptarigan/cv-analyzer/internal/metrics"
	"alfredoptarigan/cv-analyzer/internal/parser"
	"alfredoptarigan/cv-analyzer/internal/scoring"
)

type AnalyzeOptions struct {
	JobName  string
	Criteria criteria.Criteria
}

// AnalysisResult is the output of one pipeline run. JobMatch is set when a
// job name was given, CriteriaMatch when any criterion was given.
type AnalysisResult struct {
	Parsed            parser.ParsedResume           `json:"parsed"`
	Scores            scoring.ScoreReport           `json:"scores"`
	SuggestionsReport string                        `json:"suggestions_report"`
	JobMatch          *jobmatch.JobMatchResult      `json:"job_match,omitempty"`
	CriteriaMatch     *criteria.CriteriaMatchResult `json:"criteria_match,omitempty"`
}

// ExtractionFailed reports whether the document text could not be read.
func (r *AnalysisResult) ExtractionFailed() bool {
	return !r.Parsed.RawText.Found
}

// Analyzer runs extract, parse, score and match on one document. It holds no
// per-request state and is safe for concurrent use.
type Analyzer interface {
	Analyze(ctx context.Context, doc extractor.RawDocument, opts AnalyzeOptions) (*AnalysisResult, error)
	Roles() []jobmatch.Role
}

type analyzer struct {
	extractor *extractor.TextExtractor
	scorer    *scoring.Scorer
	matcher   *jobmatch.Matcher
	criteria  criteria.Options
	logger    *zap.Logger
}

func NewAnalyzer(
	ext *extractor.TextExtractor,
	scorer *scoring.Scorer,
	matcher *jobmatch.Matcher,
	criteriaOpts criteria.Options,
	log *zap.Logger,
) Analyzer {
	if log == nil {
		log = zap.NewNop()
	}
	return &analyzer{
		extractor: ext,
		scorer:    scorer,
		matcher:   matcher,
		criteria:  criteriaOpts,
		logger:    log,
	}
}

// NewAnalyzerFromConfig loads the role catalog named by cfg (or the embedded
// default) and builds the full pipeline around it.
func NewAnalyzerFromConfig(cfg config.AnalysisConfig, log *zap.Logger) (Analyzer, error) {
	catalog, err := jobmatch.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load job catalog: %w", err)
	}

	matcher, err := jobmatch.NewMatcher(catalog, cfg.JobMatchThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to create job matcher: %w", err)
	}

	opts := []scoring.Option{scoring.WithJobSuggester(matcher)}
	if cfg.MaxSuggestions > 0 {
		opts = append(opts, scoring.WithMaxSuggestions(cfg.MaxSuggestions))
	}
	scorer, err := scoring.NewScorer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scorer: %w", err)
	}

	return NewAnalyzer(extractor.New(log), scorer, matcher, criteria.DefaultOptions(), log), nil
}

func (a *analyzer) Roles() []jobmatch.Role {
	return a.matcher.Catalog().Roles()
}

// Analyze only fails when ctx is done. Unreadable documents produce a result
// with placeholder sections and a zero score.
func (a *analyzer) Analyze(ctx context.Context, doc extractor.RawDocument, opts AnalyzeOptions) (*AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to analyze document: %w", err)
	}

	start := time.Now()
	format, _ := extractor.ParseFormat(doc.Extension)

	text := a.extractor.Extract(doc)
	if !text.OK() {
		metrics.ExtractionFailuresTotal.WithLabelValues(string(format), string(text.Failure.Kind)).Inc()
		a.logger.Warn("⚠️ text extraction failed",
			zap.String("format", string(format)),
			zap.String("kind", string(text.Failure.Kind)),
			zap.String("reason", text.Failure.Reason))
	}

	parsed := parser.Parse(text)
	jobName := strings.TrimSpace(opts.JobName)
	scores := a.scorer.Score(parsed, jobName)

	result := &AnalysisResult{
		Parsed:            parsed,
		Scores:            scores,
		SuggestionsReport: scoring.RenderSuggestions(scores),
	}

	if jobName != "" {
		match := a.matcher.Coverage(parsed.RawText.Content(), jobName)
		result.JobMatch = &match

		outcome := "unmatched"
		if match.Matched() {
			outcome = "matched"
		}
		metrics.JobMatchTotal.WithLabelValues(outcome).Inc()
	}

	if !opts.Criteria.Empty() {
		match := criteria.MatchWithOptions(parsed, opts.Criteria, a.criteria)
		result.CriteriaMatch = &match
	}

	metrics.AnalysisDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	metrics.OverallScore.Observe(scores.OverallScore)

	a.logger.Debug("📊 document analyzed",
		zap.String("format", string(format)),
		zap.Float64("overall_score", scores.OverallScore),
		zap.Int("suggestions", len(scores.Suggestions)),
		zap.Duration("elapsed", time.Since(start)))

	return result, nil
}
