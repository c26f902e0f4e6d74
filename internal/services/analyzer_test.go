package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/criteria"
	"alfredoptarigan/cv-analyzer/internal/extractor"
	"alfredoptarigan/cv-analyzer/internal/jobmatch"
	"alfredoptarigan/cv-analyzer/internal/parser"
	"alfredoptarigan/cv-analyzer/internal/scoring"
)

const analystResume = `Jane Doe
jane@x.com | 555-123-4567
Data Analyst
Experience
Data Analyst at Acme 2018-2023
Education
BSc Statistics, Acme Institute
Skills
SQL Server, Python, Tableau`

func newTestAnalyzer(t *testing.T) Analyzer {
	t.Helper()

	catalog, err := jobmatch.DefaultCatalog()
	require.NoError(t, err)
	matcher, err := jobmatch.NewMatcher(catalog, 0)
	require.NoError(t, err)
	scorer, err := scoring.NewScorer(scoring.WithJobSuggester(matcher))
	require.NoError(t, err)

	return NewAnalyzer(extractor.New(nil), scorer, matcher, criteria.DefaultOptions(), nil)
}

func txt(s string) extractor.RawDocument {
	return extractor.RawDocument{Data: []byte(s), Extension: ".txt"}
}

func TestAnalyze_NoOptions(t *testing.T) {
	got, err := newTestAnalyzer(t).Analyze(context.Background(), txt(analystResume), AnalyzeOptions{})
	require.NoError(t, err)

	assert.False(t, got.ExtractionFailed())
	assert.Nil(t, got.JobMatch)
	assert.Nil(t, got.CriteriaMatch)
	assert.Greater(t, got.Scores.OverallScore, 0.0)
	assert.Contains(t, got.SuggestionsReport, "## Improvement Suggestions")
	assert.Empty(t, got.Scores.JobSuggestions)
}

func TestAnalyze_JobMatch(t *testing.T) {
	got, err := newTestAnalyzer(t).Analyze(context.Background(), txt(analystResume), AnalyzeOptions{JobName: " data ANALYST "})
	require.NoError(t, err)

	require.NotNil(t, got.JobMatch)
	require.NotNil(t, got.JobMatch.MatchedTitle)
	assert.Equal(t, "data analyst", *got.JobMatch.MatchedTitle)
	assert.Equal(t, []string{"sql", "tableau", "python", "statistics"}, got.JobMatch.PresentKeywords)
	assert.Equal(t, 36.4, got.JobMatch.MatchPercentage)
	assert.NotEmpty(t, got.Scores.JobSuggestions)
}

func TestAnalyze_UnknownRole(t *testing.T) {
	got, err := newTestAnalyzer(t).Analyze(context.Background(), txt(analystResume), AnalyzeOptions{JobName: "Xylophone Repair Technician"})
	require.NoError(t, err)

	require.NotNil(t, got.JobMatch)
	assert.Nil(t, got.JobMatch.MatchedTitle)
	assert.Zero(t, got.JobMatch.MatchPercentage)
	require.Len(t, got.Scores.JobSuggestions, 1)
	assert.Contains(t, got.Scores.JobSuggestions[0], "No keyword data for role")
}

func TestAnalyze_Criteria(t *testing.T) {
	years := 3
	got, err := newTestAnalyzer(t).Analyze(context.Background(), txt(analystResume), AnalyzeOptions{
		Criteria: criteria.Criteria{
			JobName:           "Data Analyst",
			RequiredYears:     &years,
			RequiredEducation: "Bachelors",
			RequiredSkills:    []string{"SQL", "excel"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, got.CriteriaMatch)
	assert.Equal(t, 85.0, got.CriteriaMatch.Score)
	assert.Len(t, got.CriteriaMatch.Details, 4)
}

func TestAnalyze_UnreadableDocument(t *testing.T) {
	got, err := newTestAnalyzer(t).Analyze(context.Background(),
		extractor.RawDocument{Data: []byte("{\\rtf1}"), Extension: ".rtf"}, AnalyzeOptions{})
	require.NoError(t, err)

	assert.True(t, got.ExtractionFailed())
	assert.Equal(t, "Unsupported file format: .rtf", got.Parsed.RawText.String())
	assert.Equal(t, parser.Unreadable, got.Parsed.Skills.String())
	assert.Equal(t, 0.0, got.Scores.OverallScore)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAnalyzer(t).Analyze(ctx, txt(analystResume), AnalyzeOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_Roles(t *testing.T) {
	roles := newTestAnalyzer(t).Roles()
	require.NotEmpty(t, roles)
	assert.Equal(t, "data analyst", roles[0].Title)
}

func TestNewAnalyzerFromConfig(t *testing.T) {
	a, err := NewAnalyzerFromConfig(config.AnalysisConfig{JobMatchThreshold: 0.3, MaxSuggestions: 15}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, a.Roles())

	_, err = NewAnalyzerFromConfig(config.AnalysisConfig{CatalogPath: "/does/not/exist.yaml"}, nil)
	assert.ErrorContains(t, err, "failed to load job catalog")
}
