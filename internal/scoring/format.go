package scoring

import "strings"

const (
	minWordCount       = 200
	maxWordCount       = 800
	minSectionHeaders  = 4
	minStructuredLines = 10
)

var (
	sectionHeaderKeywords = []string{"experience", "education", "skills", "summary", "objective"}
	bulletCharacters      = "•-*|"
)

// scoreFormat looks at the whole document: length, headers, structure and bullets.
func scoreFormat(raw string) SectionScore {
	var r rubric

	words := len(strings.Fields(raw))
	switch {
	case words >= minWordCount && words <= maxWordCount:
		r.points += 30
	case words < minWordCount:
		r.suggestions = append(r.suggestions, "CV seems too short - aim for 1-2 pages")
	default:
		r.suggestions = append(r.suggestions, "CV might be too long - keep it concise (1-2 pages)")
	}

	lower := strings.ToLower(raw)
	headers := 0
	for _, kw := range sectionHeaderKeywords {
		if strings.Contains(lower, kw) {
			headers++
		}
	}
	r.check(headers >= minSectionHeaders, 25,
		"Organize CV with clear section headers")

	r.check(len(nonEmptyLines(raw)) > minStructuredLines, 25,
		"Ensure proper formatting with clear structure")
	r.check(strings.ContainsAny(raw, bulletCharacters), 20,
		"Use bullet points to improve readability")

	return r.result()
}
