package jobmatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatcher(t *testing.T, roles []Role, threshold float64) *Matcher {
	t.Helper()
	catalog, err := NewCatalog(roles)
	require.NoError(t, err)
	m, err := NewMatcher(catalog, threshold)
	require.NoError(t, err)
	return m
}

func defaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	m, err := NewMatcher(catalog, 0)
	require.NoError(t, err)
	return m
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "nodejs developer", Normalize("  Node.js   Developer! "))
	assert.Equal(t, "cicd", Normalize("CI/CD"))
	assert.Equal(t, "", Normalize("!!! ..."))
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	titles := catalog.Titles()
	assert.Contains(t, titles, "data analyst")
	assert.Contains(t, titles, "web developer")
	assert.Contains(t, titles, "machine learning engineer")

	keywords, ok := catalog.Keywords("Data Analyst")
	require.True(t, ok)
	assert.Equal(t, "excel", keywords[0])
}

func TestNewCatalog_Invalid(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = NewCatalog([]Role{{Title: "!!!"}})
	assert.Error(t, err)

	_, err = NewCatalog([]Role{{Title: "Data Analyst"}, {Title: "data analyst"}})
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("roles: [unclosed"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("roles: []"))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestCatalog_RolesAreCopies(t *testing.T) {
	catalog, err := NewCatalog([]Role{{Title: "Web Developer", Keywords: []string{"html"}}})
	require.NoError(t, err)

	roles := catalog.Roles()
	roles[0].Keywords[0] = "changed"

	keywords, _ := catalog.Keywords("web developer")
	assert.Equal(t, []string{"html"}, keywords)
	assert.Equal(t, "web developer", roles[0].Title)
}

func TestNewMatcher_Threshold(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	m, err := NewMatcher(catalog, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultThreshold, m.Threshold())

	_, err = NewMatcher(catalog, 1.5)
	assert.Error(t, err)

	_, err = NewMatcher(nil, 0.3)
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestMatchJobTitle_CaseInsensitive(t *testing.T) {
	m := defaultMatcher(t)

	upper, ok := m.MatchJobTitle("Data Analyst")
	require.True(t, ok)
	lower, ok := m.MatchJobTitle("data analyst")
	require.True(t, ok)

	assert.Equal(t, upper, lower)
	assert.Equal(t, "data analyst", upper)
}

func TestMatchJobTitle_NoOverlap(t *testing.T) {
	m := defaultMatcher(t)

	_, ok := m.MatchJobTitle("Xylophone Repair Technician")
	assert.False(t, ok)

	_, ok = m.MatchJobTitle("  !!! ")
	assert.False(t, ok)
}

func TestMatchJobTitle_Containment(t *testing.T) {
	m := defaultMatcher(t)

	got, ok := m.MatchJobTitle("Senior Data Analyst!")
	require.True(t, ok)
	assert.Equal(t, "data analyst", got)
}

func TestMatchJobTitle_WordOverlap(t *testing.T) {
	m := newMatcher(t, []Role{{Title: "data analyst"}, {Title: "backend software engineer"}}, 0.3)

	got, ok := m.MatchJobTitle("software engineer lead")
	require.True(t, ok)
	assert.Equal(t, "backend software engineer", got)

	_, ok = m.MatchJobTitle("analyst of market trends")
	assert.False(t, ok)

	loose := newMatcher(t, []Role{{Title: "data analyst"}}, 0.2)
	got, ok = loose.MatchJobTitle("analyst of market trends")
	require.True(t, ok)
	assert.Equal(t, "data analyst", got)
}

func TestCoverage(t *testing.T) {
	m := newMatcher(t, []Role{
		{Title: "Web Developer", Keywords: []string{"html", "css", "node.js", "rest"}},
		{Title: "Empty Role"},
	}, 0)

	result := m.Coverage("Built REST APIs with Node.js and HTML", "web developer")
	require.True(t, result.Matched())
	assert.Equal(t, "web developer", *result.MatchedTitle)
	assert.Equal(t, []string{"html", "node.js", "rest"}, result.PresentKeywords)
	assert.Equal(t, []string{"css"}, result.MissingKeywords)
	assert.Equal(t, 75.0, result.MatchPercentage)

	empty := m.Coverage("anything", "empty role")
	require.True(t, empty.Matched())
	assert.Equal(t, 0.0, empty.MatchPercentage)

	none := m.Coverage("anything", "Astronaut")
	assert.False(t, none.Matched())
	assert.Equal(t, "Astronaut", none.RequestedTitle)
	assert.Empty(t, none.PresentKeywords)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 45.5, Percentage(5, 11))
	assert.Equal(t, 100.0, Percentage(3, 3))
}

func TestKeywordSuggestions_UnknownRole(t *testing.T) {
	m := newMatcher(t, []Role{{Title: "Web Developer"}, {Title: "Data Analyst"}}, 0)

	got := m.KeywordSuggestions("resume", "Astronaut")

	assert.Equal(t, []string{`No keyword data for role "Astronaut". Available roles: web developer, data analyst`}, got)
}

func TestKeywordSuggestions_Missing(t *testing.T) {
	m := newMatcher(t, []Role{{Title: "Web Developer", Keywords: []string{"html", "css", "git"}}}, 0)

	got := m.KeywordSuggestions("HTML and CSS", "Web Developer")

	assert.Equal(t, []string{
		`Keyword match for "web developer": 66.7% (2/3)`,
		"Keywords found: html, css",
		"Keywords missing: git",
		"Consider including experience or knowledge in: 'git'.",
	}, got)
}

func TestKeywordSuggestions_AllPresent(t *testing.T) {
	m := newMatcher(t, []Role{{Title: "Web Developer", Keywords: []string{"html"}}}, 0)

	got := m.KeywordSuggestions("html", "web developer")

	assert.Equal(t, "Your resume contains most essential keywords!", got[len(got)-1])
	assert.NotContains(t, got, "Keywords missing: ")
}

func TestKeywordSuggestions_PreviewCap(t *testing.T) {
	var keywords []string
	for i := 0; i < 12; i++ {
		keywords = append(keywords, fmt.Sprintf("skill%d", i))
	}
	m := newMatcher(t, []Role{{Title: "Generalist", Keywords: keywords}}, 0)

	got := m.KeywordSuggestions("nothing relevant", "generalist")

	assert.Equal(t, "Keywords missing: skill0, skill1, skill2, skill3, skill4, skill5, skill6, skill7, skill8, skill9 (+2 more)", got[1])
	assert.Len(t, got, 2+12)
}
