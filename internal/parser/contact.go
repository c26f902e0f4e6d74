package parser

import "strings"

const (
	NoContactInfo = "No contact information found"

	// maxContactInput bounds the amount of text scanned for contact details.
	maxContactInput = 200_000

	minContactLength = 3
	maxContactLength = 50
)

// ExtractContacts collects every match of ContactPatterns, drops duplicates and
// implausible lengths, and joins the rest with "; ".
func ExtractContacts(text string) Section {
	if len(text) > maxContactInput {
		text = text[:maxContactInput]
	}

	seen := make(map[string]struct{})
	var contacts []string

	for _, pattern := range ContactPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			match = strings.TrimSpace(match)
			if n := len([]rune(match)); n < minContactLength || n > maxContactLength {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			contacts = append(contacts, match)
		}
	}

	if len(contacts) == 0 {
		return NotFound(NoContactInfo)
	}

	return Section{
		Text:  strings.Join(contacts, "; "),
		Found: true,
		Lines: contacts,
	}
}
