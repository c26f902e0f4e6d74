package criteria

import (
	"regexp"
	"strconv"
)

var (
	// durationPattern matches "5 years", "3+ yrs", "2 to 4 years" and "2-4 years".
	durationPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*(?:(?:to|-|–)\s*(\d{1,2})\+?\s*)?(?:years?|yrs?)\b`)

	// yearRangePattern matches "2019-2023" and "2019 – 2023".
	yearRangePattern = regexp.MustCompile(`\b((?:19|20)\d{2})\s*[-–]\s*((?:19|20)\d{2})\b`)
)

// InferYears returns the largest duration found in text, either stated
// ("5 years") or implied by a year range ("2018-2025" is 7). Overlapping jobs
// are not merged; the single largest value wins.
func InferYears(text string) int {
	best := 0

	for _, m := range durationPattern.FindAllStringSubmatch(text, -1) {
		for _, group := range m[1:] {
			if group == "" {
				continue
			}
			if n, err := strconv.Atoi(group); err == nil && n > best {
				best = n
			}
		}
	}

	for _, m := range yearRangePattern.FindAllStringSubmatch(text, -1) {
		start, errStart := strconv.Atoi(m[1])
		end, errEnd := strconv.Atoi(m[2])
		if errStart != nil || errEnd != nil {
			continue
		}
		if d := end - start; d > best {
			best = d
		}
	}

	return best
}
