package jobmatch

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultThreshold is the minimum word overlap accepted by the fuzzy step.
	DefaultThreshold = 0.3

	presentPreview = 8
	missingPreview = 10
)

// JobMatchResult is the keyword coverage of one resume against one role.
type JobMatchResult struct {
	RequestedTitle  string   `json:"requested_title"`
	MatchedTitle    *string  `json:"matched_title"`
	PresentKeywords []string `json:"present_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	MatchPercentage float64  `json:"match_percentage"`
}

func (r JobMatchResult) Matched() bool {
	return r.MatchedTitle != nil
}

type Matcher struct {
	catalog   *Catalog
	threshold float64
}

// NewMatcher builds a matcher over catalog. threshold must be in (0, 1]; zero
// selects DefaultThreshold.
func NewMatcher(catalog *Catalog, threshold float64) (*Matcher, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold < 0 || threshold > 1 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("invalid job match threshold %v: must be in (0, 1]", threshold)
	}

	return &Matcher{catalog: catalog, threshold: threshold}, nil
}

func (m *Matcher) Catalog() *Catalog {
	return m.catalog
}

func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// MatchJobTitle resolves a free-text title to a catalog title. It tries an
// exact normalized match, then containment in either direction, then the best
// word overlap at or above the threshold.
func (m *Matcher) MatchJobTitle(title string) (string, bool) {
	input := Normalize(title)
	if input == "" {
		return "", false
	}

	if _, ok := m.catalog.index[input]; ok {
		return input, true
	}

	for _, candidate := range m.catalog.normalized {
		if strings.Contains(candidate, input) || strings.Contains(input, candidate) {
			return candidate, true
		}
	}

	userWords := wordSet(input)
	best, bestScore := "", 0.0
	for _, candidate := range m.catalog.normalized {
		score := wordOverlap(userWords, wordSet(candidate))
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore >= m.threshold {
		return best, true
	}
	return "", false
}

// wordOverlap is |common| / max(|a|, |b|).
func wordOverlap(a, b map[string]struct{}) float64 {
	denominator := max(len(a), len(b))
	if denominator == 0 {
		return 0
	}

	common := 0
	for w := range a {
		if _, ok := b[w]; ok {
			common++
		}
	}
	return float64(common) / float64(denominator)
}

// Coverage splits the matched role's keywords into present and missing for
// resumeText. MatchedTitle is nil when jobName matches no role.
func (m *Matcher) Coverage(resumeText, jobName string) JobMatchResult {
	result := JobMatchResult{
		RequestedTitle:  jobName,
		PresentKeywords: []string{},
		MissingKeywords: []string{},
	}

	title, ok := m.MatchJobTitle(jobName)
	if !ok {
		return result
	}
	result.MatchedTitle = &title

	keywords, _ := m.catalog.Keywords(title)
	present, missing := KeywordCoverage(resumeText, keywords)
	result.PresentKeywords = present
	result.MissingKeywords = missing
	result.MatchPercentage = Percentage(len(present), len(keywords))

	return result
}

// KeywordCoverage checks each keyword's normalized form for substring presence
// in the normalized resume text.
func KeywordCoverage(resumeText string, keywords []string) (present, missing []string) {
	text := Normalize(resumeText)
	present, missing = []string{}, []string{}

	for _, kw := range keywords {
		nkw := Normalize(kw)
		if nkw != "" && strings.Contains(text, nkw) {
			present = append(present, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	return present, missing
}

// Percentage returns part/total*100 rounded to one decimal, or 0 when total is 0.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// KeywordSuggestions renders coverage for jobName as suggestion lines. An
// unknown role produces a single line listing the available roles.
func (m *Matcher) KeywordSuggestions(resumeText, jobName string) []string {
	result := m.Coverage(resumeText, jobName)
	if !result.Matched() {
		return []string{NoRoleMessage(jobName, m.catalog.Titles())}
	}

	total := len(result.PresentKeywords) + len(result.MissingKeywords)
	suggestions := []string{
		fmt.Sprintf("Keyword match for %q: %.1f%% (%d/%d)",
			*result.MatchedTitle, result.MatchPercentage, len(result.PresentKeywords), total),
	}

	if len(result.PresentKeywords) > 0 {
		suggestions = append(suggestions, "Keywords found: "+preview(result.PresentKeywords, presentPreview))
	}
	if len(result.MissingKeywords) > 0 {
		suggestions = append(suggestions, "Keywords missing: "+preview(result.MissingKeywords, missingPreview))
	}

	for _, kw := range result.MissingKeywords {
		suggestions = append(suggestions, fmt.Sprintf("Consider including experience or knowledge in: '%s'.", kw))
	}
	if len(result.MissingKeywords) == 0 {
		suggestions = append(suggestions, "Your resume contains most essential keywords!")
	}

	return suggestions
}

// NoRoleMessage is shown when a job name matches no catalog role.
func NoRoleMessage(jobName string, titles []string) string {
	return fmt.Sprintf("No keyword data for role %q. Available roles: %s", jobName, strings.Join(titles, ", "))
}

func preview(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:limit], ", "), len(items)-limit)
}
