package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const noPDFText = "No readable text found in PDF"

// extractPDF concatenates the text of every readable page. The pdf reader
// already retries encrypted files with an empty password.
func (e *TextExtractor) extractPDF(data []byte) (result ExtractedText) {
	if len(data) == 0 {
		return failure(FailureNoText, noPDFText)
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("pdf reader panicked", zap.Any("panic", r))
			result = failure(FailureCorrupt, "Error reading PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			e.logger.Warn("pdf is encrypted and the empty password was rejected")
			return failure(FailureEncrypted, "Error: PDF is password protected")
		}
		e.logger.Error("failed to open pdf", zap.Error(err))
		return failure(FailureCorrupt, "Error reading PDF: %v", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		text, err := pageText(r, pageIndex)
		if err != nil {
			e.logger.Warn("skipping unreadable pdf page", zap.Int("page", pageIndex), zap.Error(err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return finish(textBuilder.String(), noPDFText)
}

// pageText extracts one page, turning a panic inside the content stream parser
// into an error so the remaining pages can still be read.
func pageText(r *pdf.Reader, pageIndex int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", pageIndex, rec)
		}
	}()

	page := r.Page(pageIndex)
	if page.V.IsNull() {
		return "", nil
	}

	return page.GetPlainText(nil)
}
