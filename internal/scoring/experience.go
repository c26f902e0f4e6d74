package scoring

import (
	"regexp"
	"strings"

	"alfredoptarigan/cv-analyzer/internal/parser"
)

const minExperienceLines = 3

var (
	actionVerbs = []string{
		"managed", "developed", "implemented", "created", "led", "improved",
		"achieved", "increased", "decreased", "streamlined", "coordinated",
	}

	datePatterns = []*regexp.Regexp{
		parser.YearPattern,
		regexp.MustCompile(`\b\d{1,2}/\d{4}\b`),
		regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)\w*\s+\d{4}\b`),
	}

	metricPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+(?:\.\d+)?\s?%`),
		regexp.MustCompile(`\$\s?\d`),
		regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:k|m|thousand|million)\b`),
	}
)

func scoreExperience(experience string) SectionScore {
	if strings.TrimSpace(experience) == "" {
		return missing("Add work experience section with job titles, companies, and dates")
	}

	lower := strings.ToLower(experience)
	var r rubric

	r.check(len(nonEmptyLines(experience)) >= minExperienceLines, 30,
		"Provide more detailed work experience")
	r.check(matchesAny(experience, datePatterns), 25,
		"Include employment dates (start/end dates)")
	r.check(containsAny(lower, actionVerbs), 25,
		"Use strong action verbs to describe your accomplishments")
	r.check(matchesAny(experience, metricPatterns), 20,
		"Include quantifiable achievements and results")

	return r.result()
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
