package scoring

import (
	"regexp"
	"strings"

	"alfredoptarigan/cv-analyzer/internal/parser"
)

var (
	degreeKeywords = []string{
		"bachelor", "master", "phd", "doctorate", "diploma", "certificate", "degree", "mba",
	}

	// Short abbreviations only count as whole words so "ma" does not match "management".
	degreeAbbreviationPattern = regexp.MustCompile(`(?i)\b(?:bs|ba|ms|ma|bsc|msc|beng|meng|b\.s|b\.a|m\.s|m\.a)\b`)

	gpaPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bgpa\s*:?\s*\d+\.\d+\b`),
		regexp.MustCompile(`(?i)\b\d+\.\d+\s*gpa\b`),
	}

	honorsKeywords = []string{
		"magna cum laude", "summa cum laude", "cum laude", "honors", "dean's list",
	}
)

func scoreEducation(education string) SectionScore {
	if strings.TrimSpace(education) == "" {
		return missing("Add education section with degree, institution, and graduation date")
	}

	lower := strings.ToLower(education)
	var r rubric

	r.check(containsAny(lower, degreeKeywords) || degreeAbbreviationPattern.MatchString(education), 40,
		"Specify your degree type (Bachelor's, Master's, etc.)")
	r.check(len(nonEmptyLines(education)) >= 2, 30,
		"Include the name of your educational institution")
	r.check(parser.YearPattern.MatchString(education), 20,
		"Add graduation year or expected graduation date")
	r.check(matchesAny(education, gpaPatterns) || containsAny(lower, honorsKeywords), 10,
		"Consider adding GPA (if 3.5+) or academic honors")

	return r.result()
}
