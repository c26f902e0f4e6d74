// Package scoring grades a parsed resume against a fixed rubric of five
// weighted dimensions and collects improvement suggestions.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"alfredoptarigan/cv-analyzer/internal/parser"
)

type Dimension string

const (
	DimensionContact    Dimension = "contact"
	DimensionExperience Dimension = "experience"
	DimensionEducation  Dimension = "education"
	DimensionSkills     Dimension = "skills"
	DimensionFormat     Dimension = "format"
)

// Dimensions is the fixed order suggestions are reported in.
var Dimensions = []Dimension{
	DimensionContact,
	DimensionExperience,
	DimensionEducation,
	DimensionSkills,
	DimensionFormat,
}

// Title is the display name used in rendered reports.
func (d Dimension) Title() string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const (
	maxDimensionScore     = 100
	DefaultMaxSuggestions = 15
	weightTolerance       = 1e-9
)

type Weights struct {
	Contact    float64 `json:"contact" yaml:"contact"`
	Experience float64 `json:"experience" yaml:"experience"`
	Education  float64 `json:"education" yaml:"education"`
	Skills     float64 `json:"skills" yaml:"skills"`
	Format     float64 `json:"format" yaml:"format"`
}

func DefaultWeights() Weights {
	return Weights{
		Contact:    0.15,
		Experience: 0.35,
		Education:  0.25,
		Skills:     0.15,
		Format:     0.10,
	}
}

func (w Weights) Sum() float64 {
	return w.Contact + w.Experience + w.Education + w.Skills + w.Format
}

// Validate rejects negative weights and weights that do not add up to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Contact, w.Experience, w.Education, w.Skills, w.Format} {
		if v < 0 {
			return fmt.Errorf("invalid scoring weights: negative weight %v", v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("invalid scoring weights: sum is %v, want 1.0", sum)
	}
	return nil
}

// SectionScore is the result of one rubric dimension.
type SectionScore struct {
	Score       float64  `json:"score"`
	Suggestions []string `json:"suggestions"`
}

type SectionScores struct {
	Contact    float64 `json:"contact"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Skills     float64 `json:"skills"`
	Format     float64 `json:"format"`
}

// Get returns the score of one dimension.
func (s SectionScores) Get(d Dimension) float64 {
	switch d {
	case DimensionContact:
		return s.Contact
	case DimensionExperience:
		return s.Experience
	case DimensionEducation:
		return s.Education
	case DimensionSkills:
		return s.Skills
	case DimensionFormat:
		return s.Format
	}
	return 0
}

// DimensionReport keeps the per-dimension suggestions for rendering.
type DimensionReport struct {
	Dimension   Dimension `json:"dimension"`
	Score       float64   `json:"score"`
	Suggestions []string  `json:"suggestions"`
}

type ScoreReport struct {
	OverallScore   float64           `json:"overall_score"`
	SectionScores  SectionScores     `json:"section_scores"`
	Suggestions    []string          `json:"suggestions"`
	Breakdown      []DimensionReport `json:"breakdown"`
	JobSuggestions []string          `json:"job_suggestions,omitempty"`
}

// JobSuggester produces role specific suggestions for a resume text.
// *jobmatch.Matcher implements it.
type JobSuggester interface {
	KeywordSuggestions(resumeText, jobName string) []string
}

type Option func(*Scorer)

func WithWeights(w Weights) Option {
	return func(s *Scorer) { s.weights = w }
}

func WithJobSuggester(js JobSuggester) Option {
	return func(s *Scorer) { s.jobs = js }
}

// WithMaxSuggestions caps the combined suggestion list. Values below 1 keep the default.
func WithMaxSuggestions(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.maxSuggestions = n
		}
	}
}

// Scorer is stateless after construction and safe for concurrent use.
type Scorer struct {
	weights        Weights
	jobs           JobSuggester
	maxSuggestions int
}

func NewScorer(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		weights:        DefaultWeights(),
		maxSuggestions: DefaultMaxSuggestions,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.weights.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score grades every dimension and appends job suggestions when jobName is set
// and a JobSuggester was configured.
func (s *Scorer) Score(parsed parser.ParsedResume, jobName string) ScoreReport {
	raw := parsed.RawText.Content()

	results := map[Dimension]SectionScore{
		DimensionContact:    scoreContact(parsed.ContactInfo.Content(), raw),
		DimensionExperience: scoreExperience(parsed.Experience.Content()),
		DimensionEducation:  scoreEducation(parsed.Education.Content()),
		DimensionSkills:     scoreSkills(parsed.Skills.Content()),
		DimensionFormat:     scoreFormat(raw),
	}

	report := ScoreReport{
		SectionScores: SectionScores{
			Contact:    results[DimensionContact].Score,
			Experience: results[DimensionExperience].Score,
			Education:  results[DimensionEducation].Score,
			Skills:     results[DimensionSkills].Score,
			Format:     results[DimensionFormat].Score,
		},
		Suggestions: []string{},
	}

	for _, d := range Dimensions {
		r := results[d]
		report.Breakdown = append(report.Breakdown, DimensionReport{
			Dimension:   d,
			Score:       r.Score,
			Suggestions: r.Suggestions,
		})
		report.Suggestions = append(report.Suggestions, r.Suggestions...)
	}

	if strings.TrimSpace(jobName) != "" && s.jobs != nil {
		report.JobSuggestions = s.jobs.KeywordSuggestions(raw, jobName)
		report.Suggestions = append(report.Suggestions, report.JobSuggestions...)
	}

	if len(report.Suggestions) > s.maxSuggestions {
		report.Suggestions = report.Suggestions[:s.maxSuggestions]
	}

	report.OverallScore = s.Overall(report.SectionScores)

	return report
}

// Overall is the weighted sum of the dimension scores rounded to one decimal.
func (s *Scorer) Overall(scores SectionScores) float64 {
	overall := scores.Contact*s.weights.Contact +
		scores.Experience*s.weights.Experience +
		scores.Education*s.weights.Education +
		scores.Skills*s.weights.Skills +
		scores.Format*s.weights.Format

	return round1(math.Max(0, math.Min(maxDimensionScore, overall)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// rubric accumulates points and suggestions for one dimension.
type rubric struct {
	points      float64
	suggestions []string
}

// check awards points when ok, otherwise records the suggestion.
func (r *rubric) check(ok bool, points float64, suggestion string) {
	if ok {
		r.points += points
		return
	}
	r.suggestions = append(r.suggestions, suggestion)
}

func (r *rubric) result() SectionScore {
	suggestions := r.suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return SectionScore{
		Score:       math.Min(r.points, maxDimensionScore),
		Suggestions: suggestions,
	}
}

func missing(suggestion string) SectionScore {
	return SectionScore{Score: 0, Suggestions: []string{suggestion}}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
