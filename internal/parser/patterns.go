package parser

import "regexp"

// Contact patterns shared by the contact extractor and the rubric scorer.
// Go's regexp is RE2 based, so none of these can backtrack catastrophically.
var (
	EmailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// USPhonePattern matches plain grouped digits like 555-123-4567 or 5551234567.
	USPhonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)

	// InternationalPhonePattern allows a leading country code and an area code in parentheses.
	InternationalPhonePattern = regexp.MustCompile(`(?:\+\d{1,3}\s?)?\(?\b\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)

	// FlexiblePhonePattern requires a leading +country code followed by up to three digit groups.
	FlexiblePhonePattern = regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{1,4}[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)

	// DigitRunPattern catches unformatted numbers.
	DigitRunPattern = regexp.MustCompile(`\b\d{10,15}\b`)

	YearPattern = regexp.MustCompile(`\b\d{4}\b`)
)

// ContactPatterns is the ordered list applied by ExtractContacts.
var ContactPatterns = []*regexp.Regexp{
	EmailPattern,
	USPhonePattern,
	InternationalPhonePattern,
	FlexiblePhonePattern,
	DigitRunPattern,
}

// PhonePatterns are the patterns the scorer accepts as proof of a phone number.
var PhonePatterns = []*regexp.Regexp{
	USPhonePattern,
	InternationalPhonePattern,
}
