package criteria

import (
	"regexp"
	"strings"
)

// educationSynonyms maps a normalized education level to the spellings that
// count as evidence of it.
var educationSynonyms = map[string][]string{
	"high school": {"high school", "secondary school", "ged"},
	"diploma":     {"diploma", "associate"},
	"bachelor":    {"bachelor", "bsc", "b.sc", "b.s.", "b.a.", "b.eng", "beng", "undergraduate"},
	"master":      {"master", "msc", "m.sc", "m.s.", "m.a.", "mba", "m.eng", "meng"},
	"phd":         {"phd", "ph.d", "doctorate", "doctoral"},
}

// wordSynonyms are short abbreviations that must stand alone, so "ged" does
// not match "managed".
var wordSynonyms = map[string]*regexp.Regexp{}

func init() {
	for _, synonyms := range educationSynonyms {
		for _, s := range synonyms {
			if len(s) < 5 && isLetters(s) {
				wordSynonyms[s] = regexp.MustCompile(`\b` + s + `\b`)
			}
		}
	}
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}

// normalizeLevel folds "Bachelors", "Bachelor's" and "Masters" onto map keys.
func normalizeLevel(level string) string {
	l := strings.ToLower(strings.TrimSpace(level))
	l = strings.ReplaceAll(l, "'", "")
	l = strings.ReplaceAll(l, "’", "")

	if _, ok := educationSynonyms[l]; ok {
		return l
	}
	if trimmed := strings.TrimSuffix(l, "s"); trimmed != l {
		if _, ok := educationSynonyms[trimmed]; ok {
			return trimmed
		}
	}
	return l
}

// IsEducationLevel reports whether level is one of the known levels, in any
// case and with or without a plural or possessive s.
func IsEducationLevel(level string) bool {
	_, ok := educationSynonyms[normalizeLevel(level)]
	return ok
}

// EducationSynonyms returns the spellings accepted for level. Unknown levels
// only accept themselves.
func EducationSynonyms(level string) []string {
	key := normalizeLevel(level)
	if synonyms, ok := educationSynonyms[key]; ok {
		return synonyms
	}
	return []string{key}
}

// EducationMatches reports whether any synonym of level occurs in education.
func EducationMatches(education, level string) bool {
	text := strings.ToLower(education)
	if strings.TrimSpace(text) == "" {
		return false
	}

	for _, s := range EducationSynonyms(level) {
		if s == "" {
			continue
		}
		if re, ok := wordSynonyms[s]; ok {
			if re.MatchString(text) {
				return true
			}
			continue
		}
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
