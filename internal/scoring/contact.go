package scoring

import (
	"strings"

	"alfredoptarigan/cv-analyzer/internal/parser"
)

var (
	locationKeywords = []string{"address", "city", "state", "country", "location"}
	profileKeywords  = []string{"linkedin", "github"}
)

// scoreContact reads email and phone from the contact section, location and
// profile links from the whole text.
func scoreContact(contact, raw string) SectionScore {
	if strings.TrimSpace(contact) == "" && strings.TrimSpace(raw) == "" {
		return missing("Add contact information with a professional email and phone number")
	}

	lowerRaw := strings.ToLower(raw)
	var r rubric

	r.check(parser.EmailPattern.MatchString(contact), 40,
		"Add a professional email address")
	r.check(hasPhone(contact), 30,
		"Include a phone number")
	r.check(containsAny(lowerRaw, locationKeywords), 20,
		"Consider adding your location or city")
	r.check(containsAny(lowerRaw, profileKeywords), 10,
		"Add LinkedIn profile or other professional links")

	return r.result()
}

func hasPhone(text string) bool {
	for _, p := range parser.PhonePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
