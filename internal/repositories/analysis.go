package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/cv-analyzer/internal/models"
)

var ErrNotFound = errors.New("analysis not found")

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	// ClaimQueued moves a queued analysis to processing. It reports false when
	// the analysis exists but is no longer queued.
	ClaimQueued(id uuid.UUID) (bool, error)
	UpdateResult(id uuid.UUID, result *AnalysisUpdateData) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.Analysis, error)
	ListCompleted(page, pageSize int) ([]models.Analysis, int64, error)
	TopRanked(limit int) ([]models.Analysis, error)
	Delete(id uuid.UUID) error
}

// AnalysisUpdateData is everything a finished analysis writes back.
type AnalysisUpdateData struct {
	RawText     string
	ContactInfo string
	Experience  string
	Education   string
	Skills      string

	OverallScore    float64
	ContactScore    float64
	ExperienceScore float64
	EducationScore  float64
	SkillsScore     float64
	FormatScore     float64

	Suggestions       []string
	SuggestionsReport string

	MatchedJobTitle    *string
	JobMatchPercentage *float64
	PresentKeywords    []string
	MissingKeywords    []string

	CriteriaScore   *float64
	CriteriaDetails []string
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) ClaimQueued(id uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ? AND status = ?", id, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":     models.StatusProcessing,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to claim analysis: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *analysisRepository) UpdateResult(id uuid.UUID, data *AnalysisUpdateData) error {
	now := time.Now()

	// Columns are selected explicitly so zero scores and nil match fields are written too.
	result := r.db.Model(&models.Analysis{ID: id}).
		Select(
			"status", "raw_text", "contact_info", "experience", "education", "skills",
			"overall_score", "contact_score", "experience_score", "education_score", "skills_score", "format_score",
			"suggestions", "suggestions_report",
			"matched_job_title", "job_match_percentage", "present_keywords", "missing_keywords",
			"criteria_score", "criteria_details",
			"error_message", "processed_at", "updated_at",
		).
		Updates(models.Analysis{
			Status:             models.StatusCompleted,
			RawText:            data.RawText,
			ContactInfo:        data.ContactInfo,
			Experience:         data.Experience,
			Education:          data.Education,
			Skills:             data.Skills,
			OverallScore:       &data.OverallScore,
			ContactScore:       data.ContactScore,
			ExperienceScore:    data.ExperienceScore,
			EducationScore:     data.EducationScore,
			SkillsScore:        data.SkillsScore,
			FormatScore:        data.FormatScore,
			Suggestions:        data.Suggestions,
			SuggestionsReport:  data.SuggestionsReport,
			MatchedJobTitle:    data.MatchedJobTitle,
			JobMatchPercentage: data.JobMatchPercentage,
			PresentKeywords:    data.PresentKeywords,
			MissingKeywords:    data.MissingKeywords,
			CriteriaScore:      data.CriteriaScore,
			CriteriaDetails:    data.CriteriaDetails,
			ErrorMessage:       nil,
			ProcessedAt:        &now,
			UpdatedAt:          now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update result: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *analysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, "error", map[string]interface{}{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
		"updated_at":    time.Now(),
	})
}

func (r *analysisRepository) update(id uuid.UUID, what string, updates map[string]interface{}) error {
	result := r.db.Model(&models.Analysis{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", what, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *analysisRepository) FindPendingJobs(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}

	return analyses, nil
}

// ListCompleted pages through processed analyses, newest first. page starts at 1.
func (r *analysisRepository) ListCompleted(page, pageSize int) ([]models.Analysis, int64, error) {
	if page < 1 {
		page = 1
	}

	completed := func() *gorm.DB {
		return r.db.Model(&models.Analysis{}).Where("status = ?", models.StatusCompleted)
	}

	var total int64
	if err := completed().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	var analyses []models.Analysis
	err := completed().
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&analyses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list analyses: %w", err)
	}

	return analyses, total, nil
}

func (r *analysisRepository) TopRanked(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("status = ?", models.StatusCompleted).
		Order("overall_score DESC NULLS LAST").
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error

	if err != nil {
		return nil, fmt.Errorf("failed to rank analyses: %w", err)
	}

	return analyses, nil
}

func (r *analysisRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Analysis{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
