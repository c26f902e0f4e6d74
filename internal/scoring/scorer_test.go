package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/cv-analyzer/internal/extractor"
	"alfredoptarigan/cv-analyzer/internal/parser"
)

type fakeSuggester struct {
	lines []string
	calls int
}

func (f *fakeSuggester) KeywordSuggestions(resumeText, jobName string) []string {
	f.calls++
	return f.lines
}

func newScorer(t *testing.T, opts ...Option) *Scorer {
	t.Helper()
	s, err := NewScorer(opts...)
	require.NoError(t, err)
	return s
}

func unreadableResume() parser.ParsedResume {
	return parser.Parse(extractor.New(nil).Extract(extractor.RawDocument{Extension: ".txt"}))
}

func fullResume() string {
	var b strings.Builder
	b.WriteString("Jane Doe\n")
	b.WriteString("jane@x.com | 555-123-4567\n")
	b.WriteString("City: Springfield, Country: USA\n")
	b.WriteString("Summary\n")
	b.WriteString("Backend engineer focused on reliable data services.\n")
	b.WriteString("Experience\n")
	b.WriteString("Senior Engineer, Acme Corp, 2019 - 2023\n")
	b.WriteString("Profile: linkedin.com/in/jane\n")
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "- Developed service number %d for the analytics platform team\n", i)
	}
	b.WriteString("Education\n")
	b.WriteString("Bachelor of Science in Computer Science, Acme Institute, 2018\n")
	b.WriteString("Skills\n")
	b.WriteString("Technical: Python, SQL, Go, Docker, AWS\n")
	b.WriteString("Soft: communication, leadership, teamwork\n")
	return b.String()
}

func TestNewScorer_RejectsBadWeights(t *testing.T) {
	_, err := NewScorer(WithWeights(Weights{Contact: 0.5, Experience: 0.3}))
	assert.Error(t, err)

	_, err = NewScorer(WithWeights(Weights{Contact: -0.2, Experience: 0.6, Education: 0.3, Skills: 0.2, Format: 0.1}))
	assert.Error(t, err)

	s, err := NewScorer()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.Weights().Sum(), 1e-9)
}

func TestScore_AllPlaceholders(t *testing.T) {
	report := newScorer(t).Score(unreadableResume(), "")

	assert.Equal(t, 0.0, report.OverallScore)
	assert.Equal(t, SectionScores{}, report.SectionScores)
	assert.GreaterOrEqual(t, len(report.Suggestions), 5)
	assert.Nil(t, report.JobSuggestions)
}

func TestScore_Idempotent(t *testing.T) {
	s := newScorer(t)
	parsed := parser.ParseText(fullResume())

	assert.Equal(t, s.Score(parsed, ""), s.Score(parsed, ""))
}

func TestScore_RoundTrip(t *testing.T) {
	s := newScorer(t)

	full := s.Score(parser.ParseText(fullResume()), "")
	empty := s.Score(parser.ParseText("hello"), "")

	assert.Equal(t, 100.0, full.SectionScores.Contact)
	assert.Equal(t, 100.0, full.SectionScores.Format)
	assert.Greater(t, full.OverallScore, empty.OverallScore)
	assert.Equal(t, 0.0, empty.OverallScore)
}

func TestScore_SuggestionOrderAndCap(t *testing.T) {
	jobs := &fakeSuggester{}
	for i := 0; i < 20; i++ {
		jobs.lines = append(jobs.lines, fmt.Sprintf("job tip %d", i))
	}
	s := newScorer(t, WithJobSuggester(jobs))

	report := s.Score(unreadableResume(), "Data Analyst")

	require.Len(t, report.Suggestions, DefaultMaxSuggestions)
	assert.Equal(t, 1, jobs.calls)
	assert.Len(t, report.JobSuggestions, 20)
	assert.Equal(t, report.Breakdown[0].Suggestions[0], report.Suggestions[0])
	assert.Contains(t, report.Suggestions, "job tip 0")

	dimensionCount := 0
	for _, d := range report.Breakdown {
		dimensionCount += len(d.Suggestions)
	}
	assert.Equal(t, "job tip 0", report.Suggestions[dimensionCount])
}

func TestScore_NoJobNameSkipsSuggester(t *testing.T) {
	jobs := &fakeSuggester{lines: []string{"tip"}}
	s := newScorer(t, WithJobSuggester(jobs), WithMaxSuggestions(3))

	report := s.Score(unreadableResume(), "  ")

	assert.Zero(t, jobs.calls)
	assert.Len(t, report.Suggestions, 3)
}

func TestOverall_Bounds(t *testing.T) {
	s := newScorer(t)
	values := []float64{0, 12.5, 50, 99.9, 100}

	for _, c := range values {
		for _, e := range values {
			for _, f := range values {
				got := s.Overall(SectionScores{Contact: c, Experience: e, Education: f, Skills: c, Format: e})
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 100.0)
			}
		}
	}

	assert.Equal(t, 100.0, s.Overall(SectionScores{100, 100, 100, 100, 100}))
	assert.Equal(t, 35.0, s.Overall(SectionScores{Experience: 100}))
	assert.Equal(t, 4.5, s.Overall(SectionScores{Contact: 30}))
}

func TestScoreContact(t *testing.T) {
	empty := scoreContact("", "  ")
	assert.Equal(t, 0.0, empty.Score)
	assert.Len(t, empty.Suggestions, 1)

	partial := scoreContact("jane@x.com", "jane@x.com github.com/jane")
	assert.Equal(t, 50.0, partial.Score)
	assert.Equal(t, []string{"Include a phone number", "Consider adding your location or city"}, partial.Suggestions)
}

func TestScoreExperience(t *testing.T) {
	full := scoreExperience("Experience\nSenior Engineer at Acme 2019 - 2023\nLed a migration that increased throughput by 25%")
	assert.Equal(t, 100.0, full.Score)
	assert.Empty(t, full.Suggestions)

	thin := scoreExperience("Experience\nDid things")
	assert.Equal(t, 0.0, thin.Score)
	assert.Len(t, thin.Suggestions, 4)

	assert.Equal(t, 0.0, scoreExperience("").Score)
}

func TestMetricPatterns(t *testing.T) {
	for _, text := range []string{"grew 25%", "saved $5M", "reached 10k users", "2 million requests", "cut costs 3.5 %"} {
		assert.True(t, matchesAny(text, metricPatterns), text)
	}
	for _, text := range []string{"led the team", "version 2", "in 2019"} {
		assert.False(t, matchesAny(text, metricPatterns), text)
	}
}

func TestScoreEducation(t *testing.T) {
	full := scoreEducation("Education\nBSc Computer Science\nAcme Institute 2018, GPA: 3.8")
	assert.Equal(t, 100.0, full.Score)

	noDegree := scoreEducation("Education\nManagement course")
	assert.Equal(t, 30.0, noDegree.Score)
	assert.Contains(t, noDegree.Suggestions, "Specify your degree type (Bachelor's, Master's, etc.)")

	honors := scoreEducation("Master of Arts, graduated cum laude")
	assert.Equal(t, 50.0, honors.Score)
}

func TestScoreSkills(t *testing.T) {
	full := scoreSkills("Skills\nTechnical: Python, SQL, Go, Docker, AWS, React, Kubernetes\nSoft: communication, leadership")
	assert.Equal(t, 100.0, full.Score)

	sparse := scoreSkills("Skills\nGo")
	assert.Equal(t, 0.0, sparse.Score)
	assert.Len(t, sparse.Suggestions, 4)

	assert.Equal(t, 3, estimateSkillCount("a, b; c\nd"))
	assert.Equal(t, 4, estimateSkillCount("• a\n• b"))
}

func TestScoreFormat(t *testing.T) {
	long := scoreFormat(strings.Repeat("word ", 1000))
	assert.Equal(t, 0.0, long.Score)
	assert.Contains(t, long.Suggestions, "CV might be too long - keep it concise (1-2 pages)")

	short := scoreFormat("Experience\nEducation\nSkills\nSummary\n- item")
	assert.Equal(t, 45.0, short.Score)
	assert.Contains(t, short.Suggestions, "CV seems too short - aim for 1-2 pages")
}

func TestRenderSuggestions(t *testing.T) {
	s := newScorer(t, WithJobSuggester(&fakeSuggester{lines: []string{"Consider including experience or knowledge in: 'sql'."}}))

	out := RenderSuggestions(s.Score(parser.ParseText(fullResume()), "Data Analyst"))

	assert.True(t, strings.HasPrefix(out, "## Improvement Suggestions\n"))
	assert.NotContains(t, out, "### Contact Section:")
	assert.Contains(t, out, "### Job Keywords:\n- Consider including experience or knowledge in: 'sql'.\n")
	assert.Contains(t, out, "### General Tips:\n- Tailor your CV")
}

func TestDimensionTitle(t *testing.T) {
	assert.Equal(t, "Contact", DimensionContact.Title())
	assert.Equal(t, "", Dimension("").Title())
}
