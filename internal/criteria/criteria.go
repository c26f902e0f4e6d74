// Package criteria scores a parsed resume against explicit hiring criteria:
// a job title, minimum years of experience, an education level and a skill list.
package criteria

import (
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/cv-analyzer/internal/parser"
)

const (
	jobTitlePoints   = 20
	experiencePoints = 30
	educationPoints  = 20
	skillsPoints     = 30
)

// Criteria holds the optional requirements. Zero values are not evaluated.
type Criteria struct {
	JobName           string   `json:"job_name,omitempty"`
	RequiredYears     *int     `json:"required_years,omitempty"`
	RequiredEducation string   `json:"required_education,omitempty"`
	RequiredSkills    []string `json:"required_skills,omitempty"`
}

// Empty reports whether no criterion would be evaluated.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.JobName) == "" &&
		c.RequiredYears == nil &&
		strings.TrimSpace(c.RequiredEducation) == "" &&
		len(cleanSkills(c.RequiredSkills)) == 0
}

type CriteriaMatchResult struct {
	Score   float64  `json:"score"`
	Details []string `json:"details"`
}

type Options struct {
	// RequireAllJobTokens demands every word of the job name in the resume.
	// When false a single word is enough.
	RequireAllJobTokens bool
}

func DefaultOptions() Options {
	return Options{RequireAllJobTokens: true}
}

// Match evaluates c against parsed with DefaultOptions.
func Match(parsed parser.ParsedResume, c Criteria) CriteriaMatchResult {
	return MatchWithOptions(parsed, c, DefaultOptions())
}

// MatchWithOptions adds one detail line per evaluated criterion. Score is the
// share of available points earned, from 0 to 100.
func MatchWithOptions(parsed parser.ParsedResume, c Criteria, opts Options) CriteriaMatchResult {
	var (
		earned, possible float64
		details          = []string{}
	)

	if job := strings.TrimSpace(c.JobName); job != "" {
		possible += jobTitlePoints
		if jobTitleMatches(parsed.RawText.Content(), job, opts.RequireAllJobTokens) {
			earned += jobTitlePoints
			details = append(details, fmt.Sprintf("Job title matched: %s", job))
		} else {
			details = append(details, fmt.Sprintf("Job title not matched: %s", job))
		}
	}

	if c.RequiredYears != nil {
		possible += experiencePoints
		text := parsed.Experience.Content()
		if !parsed.Experience.Found {
			text = parsed.RawText.Content()
		}

		years := InferYears(text)
		if years >= *c.RequiredYears {
			earned += experiencePoints
			details = append(details, fmt.Sprintf("Experience matched: %d years found (required %d)", years, *c.RequiredYears))
		} else {
			details = append(details, fmt.Sprintf("Experience not matched: %d years found (required %d)", years, *c.RequiredYears))
		}
	}

	if level := strings.TrimSpace(c.RequiredEducation); level != "" {
		possible += educationPoints
		if EducationMatches(parsed.Education.Content(), level) {
			earned += educationPoints
			details = append(details, fmt.Sprintf("Education matched: %s", level))
		} else {
			details = append(details, fmt.Sprintf("Education not matched: %s", level))
		}
	}

	if required := cleanSkills(c.RequiredSkills); len(required) > 0 {
		possible += skillsPoints
		matched, missing := MatchSkills(parsed.Skills.Content(), required)
		fraction := float64(len(matched)) / float64(len(required))
		earned += skillsPoints * fraction
		details = append(details, skillsDetail(matched, missing, len(required)))
	}

	result := CriteriaMatchResult{Details: details}
	if possible > 0 {
		result.Score = math.Round(earned/possible*1000) / 10
	}
	return result
}

func jobTitleMatches(raw, job string, requireAll bool) bool {
	text := strings.ToLower(raw)
	tokens := strings.Fields(strings.ToLower(job))
	if len(tokens) == 0 {
		return false
	}

	for _, token := range tokens {
		found := strings.Contains(text, token)
		if requireAll && !found {
			return false
		}
		if !requireAll && found {
			return true
		}
	}
	return requireAll
}

func skillsDetail(matched, missing []string, total int) string {
	line := fmt.Sprintf("Skills matched: %d/%d", len(matched), total)
	if len(matched) > 0 {
		line += " (" + strings.Join(matched, ", ") + ")"
	}
	if len(missing) > 0 {
		line += "; missing: " + strings.Join(missing, ", ")
	}
	return line
}
