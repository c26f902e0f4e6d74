package criteria

import (
	"regexp"
	"strings"
)

var skillSplitPattern = regexp.MustCompile(`[,;\n]`)

const bulletCutset = "•-*·▪ \t"

// SkillTokens splits a skills section into trimmed lower-case tokens.
func SkillTokens(skills string) []string {
	var tokens []string
	for _, part := range skillSplitPattern.Split(skills, -1) {
		token := strings.ToLower(strings.Trim(part, bulletCutset))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// ParseSkillList cleans a comma separated list typed by a user.
func ParseSkillList(input string) []string {
	return cleanSkills(strings.Split(input, ","))
}

func cleanSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}

// MatchSkills treats a required skill as present when it is a substring of any
// resume token, so "sql" matches "sql server".
func MatchSkills(skills string, required []string) (matched, missing []string) {
	tokens := SkillTokens(skills)
	matched, missing = []string{}, []string{}

	for _, req := range cleanSkills(required) {
		found := false
		for _, token := range tokens {
			if strings.Contains(token, req) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, req)
		} else {
			missing = append(missing, req)
		}
	}

	return matched, missing
}
