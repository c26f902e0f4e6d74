// Package repotest provides an in-memory AnalysisRepository for tests.
package repotest

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/repositories"
)

var _ repositories.AnalysisRepository = (*Memory)(nil)

// Memory keeps analyses in a map. Returned analyses are copies.
type Memory struct {
	mu        sync.Mutex
	analyses  map[uuid.UUID]*models.Analysis
	CreateErr error
}

func NewMemory() *Memory {
	return &Memory{analyses: map[uuid.UUID]*models.Analysis{}}
}

// Get returns a copy of the stored analysis or nil.
func (r *Memory) Get(id uuid.UUID) *models.Analysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

func (r *Memory) Create(a *models.Analysis) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a.CreatedAt = time.Now()
	cp := *a
	r.analyses[a.ID] = &cp
	return nil
}

func (r *Memory) FindByID(id uuid.UUID) (*models.Analysis, error) {
	if a := r.Get(id); a != nil {
		return a, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *Memory) ClaimQueued(id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if a.Status != models.StatusQueued {
		return false, nil
	}
	a.Status = models.StatusProcessing
	return true, nil
}

func (r *Memory) UpdateResult(id uuid.UUID, d *repositories.AnalysisUpdateData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	now := time.Now()
	overall := d.OverallScore
	a.Status = models.StatusCompleted
	a.RawText = d.RawText
	a.ContactInfo = d.ContactInfo
	a.Experience = d.Experience
	a.Education = d.Education
	a.Skills = d.Skills
	a.OverallScore = &overall
	a.ContactScore = d.ContactScore
	a.ExperienceScore = d.ExperienceScore
	a.EducationScore = d.EducationScore
	a.SkillsScore = d.SkillsScore
	a.FormatScore = d.FormatScore
	a.Suggestions = d.Suggestions
	a.SuggestionsReport = d.SuggestionsReport
	a.MatchedJobTitle = d.MatchedJobTitle
	a.JobMatchPercentage = d.JobMatchPercentage
	a.PresentKeywords = d.PresentKeywords
	a.MissingKeywords = d.MissingKeywords
	a.CriteriaScore = d.CriteriaScore
	a.CriteriaDetails = d.CriteriaDetails
	a.ErrorMessage = nil
	a.ProcessedAt = &now
	return nil
}

func (r *Memory) UpdateError(id uuid.UUID, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.analyses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Status = models.StatusFailed
	a.ErrorMessage = &msg
	return nil
}

func (r *Memory) FindPendingJobs(limit int) ([]models.Analysis, error) {
	var out []models.Analysis
	for _, a := range r.Sorted() {
		if a.Status == models.StatusQueued && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Memory) ListCompleted(page, pageSize int) ([]models.Analysis, int64, error) {
	var completed []models.Analysis
	for _, a := range r.Sorted() {
		if a.Status == models.StatusCompleted {
			completed = append(completed, a)
		}
	}
	start := (page - 1) * pageSize
	if start >= len(completed) {
		return []models.Analysis{}, int64(len(completed)), nil
	}
	end := start + pageSize
	if end > len(completed) {
		end = len(completed)
	}
	return completed[start:end], int64(len(completed)), nil
}

func (r *Memory) TopRanked(limit int) ([]models.Analysis, error) {
	var out []models.Analysis
	for _, a := range r.Sorted() {
		if a.Status == models.StatusCompleted {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].OverallScore > *out[j].OverallScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *Memory) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.analyses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.analyses, id)
	return nil
}

// Sorted returns every analysis, oldest first.
func (r *Memory) Sorted() []models.Analysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Analysis, 0, len(r.analyses))
	for _, a := range r.analyses {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
