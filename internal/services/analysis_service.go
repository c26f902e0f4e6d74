package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/criteria"
	"alfredoptarigan/cv-analyzer/internal/extractor"
	"alfredoptarigan/cv-analyzer/internal/jobmatch"
	"alfredoptarigan/cv-analyzer/internal/logger"
	"alfredoptarigan/cv-analyzer/internal/metrics"
	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/repositories"
)

const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// AnalysisRequest carries the optional job name and hiring criteria of an upload.
type AnalysisRequest struct {
	JobName           string
	RequiredYears     *int
	RequiredEducation string
	RequiredSkills    []string
}

// Options evaluates the job title as a criterion only when some other
// criterion was supplied too.
func (r AnalysisRequest) Options() AnalyzeOptions {
	c := criteria.Criteria{
		RequiredYears:     r.RequiredYears,
		RequiredEducation: r.RequiredEducation,
		RequiredSkills:    r.RequiredSkills,
	}
	if !c.Empty() {
		c.JobName = r.JobName
	}
	return AnalyzeOptions{JobName: r.JobName, Criteria: c}
}

func requestFor(a *models.Analysis) AnalysisRequest {
	return AnalysisRequest{
		JobName:           a.JobName,
		RequiredYears:     a.RequiredYears,
		RequiredEducation: a.RequiredEducation,
		RequiredSkills:    a.RequiredSkills,
	}
}

type AnalysisService interface {
	// Submit stores the file and creates a queued analysis for the worker.
	Submit(ctx context.Context, filename string, data []byte, req AnalysisRequest) (*models.Analysis, error)
	// AnalyzeNow stores and analyzes the file before returning.
	AnalyzeNow(ctx context.Context, filename string, data []byte, req AnalysisRequest) (*models.Analysis, error)
	// Process runs a queued analysis. Analyses in any other status are skipped.
	Process(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	Similar(ctx context.Context, query string, limit int) ([]models.SimilarResult, error)
	Reindex(ctx context.Context, pageSize int) (int, error)
	Roles() []jobmatch.Role
}

type analysisService struct {
	repo     repositories.AnalysisRepository
	storage  StorageService
	analyzer Analyzer
	notifier Notifier
	index    ResumeIndex
	log      *zap.Logger
}

func NewAnalysisService(
	repo repositories.AnalysisRepository,
	storage StorageService,
	analyzer Analyzer,
	notifier Notifier,
	index ResumeIndex,
	log *zap.Logger,
) AnalysisService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if index == nil {
		index = NewDisabledIndex()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &analysisService{
		repo:     repo,
		storage:  storage,
		analyzer: analyzer,
		notifier: notifier,
		index:    index,
		log:      log,
	}
}

func (s *analysisService) Roles() []jobmatch.Role {
	return s.analyzer.Roles()
}

func (s *analysisService) Submit(ctx context.Context, filename string, data []byte, req AnalysisRequest) (*models.Analysis, error) {
	analysis, err := s.create(ctx, filename, data, req, models.StatusQueued)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, analysis)
	return analysis, nil
}

func (s *analysisService) AnalyzeNow(ctx context.Context, filename string, data []byte, req AnalysisRequest) (*models.Analysis, error) {
	analysis, err := s.create(ctx, filename, data, req, models.StatusProcessing)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, analysis, data, ModeSync)
}

func (s *analysisService) create(ctx context.Context, filename string, data []byte, req AnalysisRequest, status models.AnalysisStatus) (*models.Analysis, error) {
	key, err := s.storage.Save(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	analysis := &models.Analysis{
		ID:                uuid.New(),
		Filename:          filename,
		FileType:          strings.ToLower(filepath.Ext(filename)),
		FileSize:          int64(len(data)),
		StorageKey:        key,
		Status:            status,
		JobName:           strings.TrimSpace(req.JobName),
		RequiredYears:     req.RequiredYears,
		RequiredEducation: strings.TrimSpace(req.RequiredEducation),
		RequiredSkills:    req.RequiredSkills,
	}

	if err := s.repo.Create(analysis); err != nil {
		// Cleanup stored file if database insert fails
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.log.Warn("⚠️ failed to remove orphaned file", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	return analysis, nil
}

func (s *analysisService) Process(ctx context.Context, id uuid.UUID) error {
	analysis, err := s.repo.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	log := logger.WithFields(s.log, logger.AnalysisFields(id.String(), analysis.Filename, analysis.JobName)...)

	// The poller may enqueue an analysis that another worker already picked up.
	claimed, err := s.repo.ClaimQueued(id)
	if err != nil {
		return fmt.Errorf("failed to claim analysis: %w", err)
	}
	if !claimed {
		log.Debug("⏭️ skipping analysis", zap.String("status", string(analysis.Status)))
		return nil
	}
	analysis.Status = models.StatusProcessing
	s.publish(ctx, analysis)

	log.Info("🔄 Starting analysis")

	data, err := s.storage.Read(ctx, analysis.StorageKey)
	if err != nil {
		return s.fail(ctx, analysis, ModeAsync, fmt.Errorf("failed to read stored file: %w", err))
	}

	if _, err := s.run(ctx, analysis, data, ModeAsync); err != nil {
		return err
	}
	return nil
}

// run analyzes data and persists the result. A failed run is persisted as
// status=failed and returned as an error.
func (s *analysisService) run(ctx context.Context, analysis *models.Analysis, data []byte, mode string) (*models.Analysis, error) {
	log := logger.WithFields(s.log, logger.AnalysisFields(analysis.ID.String(), analysis.Filename, analysis.JobName)...)

	result, err := s.analyzer.Analyze(ctx,
		extractor.RawDocument{Data: data, Extension: analysis.FileType},
		requestFor(analysis).Options(),
	)
	if err != nil {
		return nil, s.fail(ctx, analysis, mode, err)
	}

	if err := s.repo.UpdateResult(analysis.ID, updateDataFrom(result)); err != nil {
		return nil, s.fail(ctx, analysis, mode, fmt.Errorf("failed to save result: %w", err))
	}

	completed, err := s.repo.FindByID(analysis.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload analysis: %w", err)
	}

	metrics.AnalysesTotal.WithLabelValues(mode, string(models.StatusCompleted)).Inc()
	log.Info("✅ Analysis completed", zap.Float64("overall_score", result.Scores.OverallScore))

	s.publish(ctx, completed)
	if err := s.index.Index(ctx, completed); err != nil {
		log.Warn("⚠️ failed to index analysis", zap.Error(err))
	}

	return completed, nil
}

func (s *analysisService) fail(ctx context.Context, analysis *models.Analysis, mode string, cause error) error {
	msg := cause.Error()
	if err := s.repo.UpdateError(analysis.ID, msg); err != nil {
		s.log.Error("❌ failed to record analysis error",
			zap.String("analysis_id", analysis.ID.String()), zap.Error(err))
	}

	metrics.AnalysesTotal.WithLabelValues(mode, string(models.StatusFailed)).Inc()

	analysis.Status = models.StatusFailed
	analysis.ErrorMessage = &msg
	s.publish(ctx, analysis)

	return cause
}

func (s *analysisService) publish(ctx context.Context, analysis *models.Analysis) {
	if err := s.notifier.Publish(ctx, StatusUpdateFor(analysis)); err != nil {
		s.log.Warn("⚠️ failed to publish status update",
			zap.String("analysis_id", analysis.ID.String()), zap.Error(err))
	}
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	analysis, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, analysis.StorageKey); err != nil && !errors.Is(err, ErrFileNotFound) {
		s.log.Warn("⚠️ failed to delete stored file", zap.String("key", analysis.StorageKey), zap.Error(err))
	}
	if err := s.index.Remove(ctx, id); err != nil {
		s.log.Warn("⚠️ failed to remove analysis from index", zap.String("analysis_id", id.String()), zap.Error(err))
	}

	return nil
}

// Similar returns the stored analyses nearest to query. Hits whose analysis
// was deleted in the meantime are dropped.
func (s *analysisService) Similar(ctx context.Context, query string, limit int) ([]models.SimilarResult, error) {
	hits, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]models.SimilarResult, 0, len(hits))
	for _, hit := range hits {
		analysis, err := s.repo.FindByID(hit.AnalysisID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load similar analysis: %w", err)
		}

		results = append(results, models.SimilarResult{
			ID:           analysis.ID.String(),
			Filename:     analysis.Filename,
			Similarity:   hit.Score,
			OverallScore: analysis.OverallScore,
		})
	}

	return results, nil
}

// Reindex pushes every completed analysis into the index and returns how many
// were indexed.
func (s *analysisService) Reindex(ctx context.Context, pageSize int) (int, error) {
	if !s.index.Enabled() {
		return 0, ErrIndexDisabled
	}
	if pageSize < 1 {
		return 0, fmt.Errorf("invalid page size %d: must be at least 1", pageSize)
	}

	indexed := 0
	for page := 1; ; page++ {
		analyses, total, err := s.repo.ListCompleted(page, pageSize)
		if err != nil {
			return indexed, err
		}

		for i := range analyses {
			if err := ctx.Err(); err != nil {
				return indexed, err
			}
			if err := s.index.Index(ctx, &analyses[i]); err != nil {
				s.log.Warn("⚠️ failed to index analysis",
					zap.String("analysis_id", analyses[i].ID.String()), zap.Error(err))
				continue
			}
			indexed++
		}

		if len(analyses) == 0 || int64(page*pageSize) >= total {
			return indexed, nil
		}
	}
}

func updateDataFrom(r *AnalysisResult) *repositories.AnalysisUpdateData {
	scores := r.Scores.SectionScores
	data := &repositories.AnalysisUpdateData{
		RawText:     r.Parsed.RawText.String(),
		ContactInfo: r.Parsed.ContactInfo.String(),
		Experience:  r.Parsed.Experience.String(),
		Education:   r.Parsed.Education.String(),
		Skills:      r.Parsed.Skills.String(),

		OverallScore:    r.Scores.OverallScore,
		ContactScore:    scores.Contact,
		ExperienceScore: scores.Experience,
		EducationScore:  scores.Education,
		SkillsScore:     scores.Skills,
		FormatScore:     scores.Format,

		Suggestions:       r.Scores.Suggestions,
		SuggestionsReport: r.SuggestionsReport,
	}

	if m := r.JobMatch; m != nil {
		pct := m.MatchPercentage
		data.MatchedJobTitle = m.MatchedTitle
		data.JobMatchPercentage = &pct
		data.PresentKeywords = m.PresentKeywords
		data.MissingKeywords = m.MissingKeywords
	}

	if c := r.CriteriaMatch; c != nil {
		score := c.Score
		data.CriteriaScore = &score
		data.CriteriaDetails = c.Details
	}

	return data
}
