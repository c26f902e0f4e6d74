package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis is one uploaded resume together with its parsed sections, rubric
// scores and optional job/criteria match.
type Analysis struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename   string         `gorm:"type:text;not null" json:"filename"`
	FileType   string         `gorm:"type:text" json:"file_type"`
	FileSize   int64          `json:"file_size"`
	StorageKey string         `gorm:"type:text" json:"-"`
	Status     AnalysisStatus `gorm:"not null;default:'queued';index" json:"status"`

	JobName           string   `gorm:"type:text" json:"job_name,omitempty"`
	RequiredYears     *int     `json:"required_years,omitempty"`
	RequiredEducation string   `gorm:"type:text" json:"required_education,omitempty"`
	RequiredSkills    []string `gorm:"serializer:json;type:jsonb" json:"required_skills,omitempty"`

	RawText     string `gorm:"type:text" json:"raw_text,omitempty"`
	ContactInfo string `gorm:"type:text" json:"contact_info,omitempty"`
	Experience  string `gorm:"type:text" json:"experience,omitempty"`
	Education   string `gorm:"type:text" json:"education,omitempty"`
	Skills      string `gorm:"type:text" json:"skills,omitempty"`

	OverallScore    *float64 `gorm:"type:decimal(4,1);index" json:"overall_score,omitempty"`
	ContactScore    float64  `json:"contact_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	SkillsScore     float64  `json:"skills_score"`
	FormatScore     float64  `json:"format_score"`

	Suggestions       []string `gorm:"serializer:json;type:jsonb" json:"suggestions,omitempty"`
	SuggestionsReport string   `gorm:"type:text" json:"suggestions_report,omitempty"`

	MatchedJobTitle    *string  `gorm:"type:text" json:"matched_job_title,omitempty"`
	JobMatchPercentage *float64 `json:"job_match_percentage,omitempty"`
	PresentKeywords    []string `gorm:"serializer:json;type:jsonb" json:"present_keywords,omitempty"`
	MissingKeywords    []string `gorm:"serializer:json;type:jsonb" json:"missing_keywords,omitempty"`

	CriteriaScore   *float64 `json:"criteria_score,omitempty"`
	CriteriaDetails []string `gorm:"serializer:json;type:jsonb" json:"criteria_details,omitempty"`

	ErrorMessage *string    `gorm:"type:text" json:"error_message,omitempty"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
