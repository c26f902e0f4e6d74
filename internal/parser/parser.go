package parser

import "alfredoptarigan/cv-analyzer/internal/extractor"

// Unreadable replaces every section when the document text could not be extracted.
const Unreadable = "Could not extract due to file reading error"

// ParsedResume holds the raw text and the four extracted sections of one document.
type ParsedResume struct {
	RawText     Section `json:"raw_text"`
	ContactInfo Section `json:"contact_info"`
	Experience  Section `json:"experience"`
	Education   Section `json:"education"`
	Skills      Section `json:"skills"`
}

// Parse segments successfully extracted text. A failed extraction yields a resume
// whose raw text carries the failure message and whose sections are all unreadable.
func Parse(text extractor.ExtractedText) ParsedResume {
	if !text.OK() {
		return ParsedResume{
			RawText:     NotFound(text.String()),
			ContactInfo: NotFound(Unreadable),
			Experience:  NotFound(Unreadable),
			Education:   NotFound(Unreadable),
			Skills:      NotFound(Unreadable),
		}
	}

	return ParseText(text.Text)
}

// ParseText segments plain text that is already known to be readable.
func ParseText(raw string) ParsedResume {
	return ParsedResume{
		RawText:     Section{Text: raw, Found: raw != ""},
		ContactInfo: ExtractContacts(raw),
		Experience:  ExtractExperience(raw),
		Education:   ExtractEducation(raw),
		Skills:      ExtractSkills(raw),
	}
}
