package scoring

import (
	"regexp"
	"strings"
)

var (
	skillSeparatorPattern = regexp.MustCompile(`[,\n•\-*]`)

	technicalKeywords = []string{
		"python", "java", "javascript", "sql", "html", "css", "react",
		"programming", "software", "database", "cloud", "aws", "azure",
	}

	softKeywords = []string{
		"communication", "leadership", "teamwork", "problem solving",
		"analytical", "creative", "organized", "detail-oriented",
	}
)

// skillTiers maps a minimum estimated skill count to points, best first.
var skillTiers = []struct {
	min    int
	points float64
}{
	{8, 40},
	{5, 30},
	{3, 20},
}

// estimateSkillCount treats every separator as the boundary between two skills.
func estimateSkillCount(skills string) int {
	return len(skillSeparatorPattern.FindAllStringIndex(skills, -1)) + 1
}

func scoreSkills(skills string) SectionScore {
	if strings.TrimSpace(skills) == "" {
		return missing("Add a skills section with relevant technical and soft skills")
	}

	lower := strings.ToLower(skills)
	var r rubric

	var tierPoints float64
	count := estimateSkillCount(skills)
	for _, tier := range skillTiers {
		if count >= tier.min {
			tierPoints = tier.points
			break
		}
	}
	r.check(tierPoints > 0, tierPoints,
		"List more relevant skills (aim for 5-10 skills)")

	r.check(containsAny(lower, technicalKeywords), 30,
		"Include relevant technical skills for your field")
	r.check(containsAny(lower, softKeywords), 20,
		"Add important soft skills like communication and teamwork")
	r.check(strings.Contains(lower, "technical") || strings.Contains(lower, "soft") || strings.Contains(skills, ":"), 10,
		"Consider organizing skills into categories (Technical, Soft Skills, etc.)")

	return r.result()
}
