package models

import "time"

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}

type UploadedAnalysis struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

type UploadResponse struct {
	Count    int                `json:"count"`
	Analyses []UploadedAnalysis `json:"analyses"`
}

type ScoresResponse struct {
	Contact    float64 `json:"contact"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Skills     float64 `json:"skills"`
	Format     float64 `json:"format"`
}

type SectionsResponse struct {
	ContactInfo string `json:"contact_info"`
	Experience  string `json:"experience"`
	Education   string `json:"education"`
	Skills      string `json:"skills"`
}

type JobMatchResponse struct {
	RequestedTitle  string   `json:"requested_title"`
	MatchedTitle    *string  `json:"matched_title"`
	MatchPercentage float64  `json:"match_percentage"`
	PresentKeywords []string `json:"present_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

type CriteriaMatchResponse struct {
	Score   float64  `json:"score"`
	Details []string `json:"details"`
}

type AnalysisData struct {
	OverallScore      float64                `json:"overall_score"`
	Scores            ScoresResponse         `json:"scores"`
	Sections          SectionsResponse       `json:"sections"`
	Suggestions       []string               `json:"suggestions"`
	SuggestionsReport string                 `json:"suggestions_report,omitempty"`
	JobMatch          *JobMatchResponse      `json:"job_match,omitempty"`
	CriteriaMatch     *CriteriaMatchResponse `json:"criteria_match,omitempty"`
}

type ResultResponse struct {
	ID           string        `json:"id"`
	Filename     string        `json:"filename"`
	Status       string        `json:"status"`
	Result       *AnalysisData `json:"result,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	ProcessedAt  *time.Time    `json:"processed_at,omitempty"`
}

// AnalyzeFileResult is one entry of a synchronous batch analysis.
type AnalyzeFileResult struct {
	Filename string        `json:"filename"`
	Status   string        `json:"status"` // "success" or "failed"
	Error    *string       `json:"error"`
	ID       string        `json:"id,omitempty"`
	Result   *AnalysisData `json:"result,omitempty"`
}

type AnalyzeResponse struct {
	Count        int                 `json:"count"`
	SuccessCount int                 `json:"success_count"`
	Results      []AnalyzeFileResult `json:"results"`
}

type AnalysisSummary struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	JobName      string    `json:"job_name,omitempty"`
	Status       string    `json:"status"`
	OverallScore *float64  `json:"overall_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListResponse struct {
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
	Results    []AnalysisSummary `json:"results"`
}

type RankResponse struct {
	Results []AnalysisSummary `json:"results"`
}

type RoleResponse struct {
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
}

type JobsResponse struct {
	Roles []RoleResponse `json:"roles"`
}

type SimilarResult struct {
	ID           string   `json:"id"`
	Filename     string   `json:"filename"`
	Similarity   float32  `json:"similarity"`
	OverallScore *float64 `json:"overall_score,omitempty"`
}

type SimilarResponse struct {
	Query   string          `json:"query"`
	Results []SimilarResult `json:"results"`
}

// Summary is the list/rank view of an analysis.
func (a *Analysis) Summary() AnalysisSummary {
	return AnalysisSummary{
		ID:           a.ID.String(),
		Filename:     a.Filename,
		JobName:      a.JobName,
		Status:       string(a.Status),
		OverallScore: a.OverallScore,
		CreatedAt:    a.CreatedAt,
	}
}

// Data is nil until the analysis completed.
func (a *Analysis) Data() *AnalysisData {
	if a.Status != StatusCompleted {
		return nil
	}

	data := &AnalysisData{
		Scores: ScoresResponse{
			Contact:    a.ContactScore,
			Experience: a.ExperienceScore,
			Education:  a.EducationScore,
			Skills:     a.SkillsScore,
			Format:     a.FormatScore,
		},
		Sections: SectionsResponse{
			ContactInfo: a.ContactInfo,
			Experience:  a.Experience,
			Education:   a.Education,
			Skills:      a.Skills,
		},
		Suggestions:       a.Suggestions,
		SuggestionsReport: a.SuggestionsReport,
	}
	if a.OverallScore != nil {
		data.OverallScore = *a.OverallScore
	}
	if data.Suggestions == nil {
		data.Suggestions = []string{}
	}

	if a.JobName != "" {
		data.JobMatch = &JobMatchResponse{
			RequestedTitle:  a.JobName,
			MatchedTitle:    a.MatchedJobTitle,
			PresentKeywords: nonNil(a.PresentKeywords),
			MissingKeywords: nonNil(a.MissingKeywords),
		}
		if a.JobMatchPercentage != nil {
			data.JobMatch.MatchPercentage = *a.JobMatchPercentage
		}
	}

	if a.CriteriaScore != nil {
		data.CriteriaMatch = &CriteriaMatchResponse{
			Score:   *a.CriteriaScore,
			Details: nonNil(a.CriteriaDetails),
		}
	}

	return data
}

func (a *Analysis) ResultResponse() ResultResponse {
	return ResultResponse{
		ID:           a.ID.String(),
		Filename:     a.Filename,
		Status:       string(a.Status),
		Result:       a.Data(),
		ErrorMessage: a.ErrorMessage,
		CreatedAt:    a.CreatedAt,
		ProcessedAt:  a.ProcessedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
