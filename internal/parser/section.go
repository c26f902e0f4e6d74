// Package parser turns extracted resume text into labeled sections using
// keyword anchors and regex heuristics.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section is either real content or a placeholder explaining why there is none.
type Section struct {
	Text  string   `json:"text"`
	Found bool     `json:"found"`
	Lines []string `json:"-"`
}

// NotFound builds a placeholder section.
func NotFound(placeholder string) Section {
	return Section{Text: placeholder}
}

var placeholderPattern = regexp.MustCompile(`^No [a-z ]+ (section|content) found$`)

// IsPlaceholder reports whether text is one of the messages stored in place of
// a missing section.
func IsPlaceholder(text string) bool {
	text = strings.TrimSpace(text)
	return text == Unreadable || text == NoContactInfo || placeholderPattern.MatchString(text)
}

// Content returns the section text, or "" for placeholders.
func (s Section) Content() string {
	if !s.Found {
		return ""
	}
	return s.Text
}

func (s Section) String() string {
	return s.Text
}

// Body returns the captured lines that follow the anchor line.
func (s Section) Body() []string {
	if !s.Found || len(s.Lines) < 2 {
		return nil
	}
	return s.Lines[1:]
}

const (
	SectionExperience = "Experience"
	SectionEducation  = "Education"
	SectionSkills     = "Skills"

	ExperienceMaxLines = 15
	EducationMaxLines  = 10
	SkillsMaxLines     = 8

	// headerMaxLength is the longest line still treated as a section header.
	headerMaxLength = 50
)

var (
	ExperienceKeywords = []string{
		"experience", "work history", "employment", "career", "work experience",
		"professional experience", "employment history", "professional background",
		"work", "job", "position", "role",
	}

	EducationKeywords = []string{
		"education", "academic", "qualification", "degree", "university", "college",
		"school", "certification", "academic background", "learning", "studies",
	}

	SkillsKeywords = []string{
		"skills", "technical skills", "competencies", "abilities", "technologies",
		"tools", "expertise", "proficiencies", "technical competencies",
		"programming", "software", "languages",
	}

	stopKeywords = map[string][]string{
		"experience": {"education", "skills", "awards", "certifications", "references"},
		"education":  {"experience", "skills", "awards", "work", "employment"},
		"skills":     {"experience", "education", "awards", "work", "employment"},
	}
)

// ExtractSection captures the lines that follow the first line containing one of
// keywords, until a header-like stop line or maxLines is reached.
func ExtractSection(text string, keywords []string, sectionName string, maxLines int) Section {
	name := strings.ToLower(sectionName)
	stops := stopKeywords[name]

	var (
		captured []string
		capture  bool
		anchored bool
		body     int
	)

	for _, line := range nonEmptyLines(text) {
		lower := strings.ToLower(line)

		if containsAny(lower, keywords) {
			capture = true
			anchored = true
			captured = append(captured, line)
			if len(captured) >= maxLines {
				break
			}
			continue
		}

		if !capture {
			continue
		}

		if containsAny(lower, stops) && utf8.RuneCountInString(line) < headerMaxLength && looksLikeHeader(line) {
			break
		}

		if utf8.RuneCountInString(line) > 2 {
			captured = append(captured, line)
			body++
		}
		if len(captured) >= maxLines {
			break
		}
	}

	if !anchored {
		return NotFound(fmt.Sprintf("No %s section found", name))
	}
	if body == 0 {
		return NotFound(fmt.Sprintf("No %s content found", name))
	}

	return Section{
		Text:  strings.Join(captured, "\n"),
		Found: true,
		Lines: captured,
	}
}

func ExtractExperience(text string) Section {
	return ExtractSection(text, ExperienceKeywords, SectionExperience, ExperienceMaxLines)
}

func ExtractEducation(text string) Section {
	return ExtractSection(text, EducationKeywords, SectionEducation, EducationMaxLines)
}

func ExtractSkills(text string) Section {
	return ExtractSection(text, SkillsKeywords, SectionSkills, SkillsMaxLines)
}

// nonEmptyLines splits text into trimmed, non-empty lines.
func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func looksLikeHeader(line string) bool {
	return isUpper(line) || isTitle(line)
}

// isUpper reports whether line has at least one cased letter and no lowercase ones.
func isUpper(line string) bool {
	cased := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// isTitle reports whether every word starts with an uppercase letter followed only
// by lowercase letters, e.g. "Work Experience".
func isTitle(line string) bool {
	cased := false
	prevCased := false
	for _, r := range line {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			cased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
		default:
			prevCased = false
		}
	}
	return cased
}
