// Package extractor converts uploaded resume documents into plain text.
//
// Extraction never returns an error value: every failure is folded into the
// returned ExtractedText so the caller can always render something.
package extractor

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOC  Format = "doc"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// SupportedExtensions lists the upload extensions the extractor understands.
var SupportedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

// ParseFormat normalizes an extension such as ".PDF" or "docx".
func ParseFormat(ext string) (Format, bool) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), "."))
	switch f {
	case FormatPDF, FormatDOC, FormatDOCX, FormatTXT:
		return f, true
	}
	return f, false
}

// RawDocument is an uploaded file's bytes plus its declared extension.
type RawDocument struct {
	Data      []byte
	Extension string
}

type FailureKind string

const (
	FailureUnsupportedFormat FailureKind = "unsupported_format"
	FailureEncrypted         FailureKind = "encrypted"
	FailureCorrupt           FailureKind = "corrupt"
	FailureDecode            FailureKind = "decode"
	FailureNoText            FailureKind = "no_text"
)

// Failure describes why no text could be extracted. Reason is user facing.
type Failure struct {
	Kind   FailureKind `json:"kind"`
	Reason string      `json:"reason"`
}

// ExtractedText is either Text (Failure == nil) or a Failure.
type ExtractedText struct {
	Text    string   `json:"text,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

func (e ExtractedText) OK() bool {
	return e.Failure == nil
}

// String renders the text, or the failure reason. It is never empty.
func (e ExtractedText) String() string {
	if e.Failure != nil {
		return e.Failure.Reason
	}
	return e.Text
}

func success(text string) ExtractedText {
	return ExtractedText{Text: text}
}

func failure(kind FailureKind, format string, args ...any) ExtractedText {
	return ExtractedText{Failure: &Failure{Kind: kind, Reason: fmt.Sprintf(format, args...)}}
}

// finish trims text and maps an all-whitespace result to a no_text failure.
func finish(text, emptyReason string) ExtractedText {
	text = strings.TrimSpace(text)
	if text == "" {
		return failure(FailureNoText, "%s", emptyReason)
	}
	return success(text)
}

type TextExtractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *TextExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextExtractor{logger: logger}
}

// Extract dispatches on the document's extension.
func (e *TextExtractor) Extract(doc RawDocument) ExtractedText {
	format, ok := ParseFormat(doc.Extension)
	if !ok {
		ext := doc.Extension
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return failure(FailureUnsupportedFormat, "Unsupported file format: %s", strings.ToLower(ext))
	}

	switch format {
	case FormatPDF:
		return e.extractPDF(doc.Data)
	case FormatDOC, FormatDOCX:
		return e.extractDOCX(doc.Data)
	default:
		return e.extractTXT(doc.Data)
	}
}
