package extractor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"
)

const noDocumentText = "No readable text found in document"

// extractDOCX returns body paragraphs first, then the cells of every top-level
// table in row-major order.
func (e *TextExtractor) extractDOCX(data []byte) ExtractedText {
	if len(data) == 0 {
		return failure(FailureNoText, noDocumentText)
	}

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("failed to open docx", zap.Error(err))
		return failure(FailureCorrupt, "Error reading DOCX: %v", err)
	}
	defer doc.Close()

	body, err := parseDocumentXML(doc.Editable().GetContent())
	if err != nil {
		e.logger.Error("failed to parse docx body", zap.Error(err))
		return failure(FailureCorrupt, "Error reading DOCX: %v", err)
	}

	lines := make([]string, 0, len(body.paragraphs)+len(body.cells))
	lines = append(lines, body.paragraphs...)
	lines = append(lines, body.cells...)

	return finish(strings.Join(lines, "\n"), noDocumentText)
}

type documentBody struct {
	paragraphs []string
	cells      []string
}

// parseDocumentXML walks word/document.xml. Paragraphs inside a table cell
// belong to the cell of the outermost table.
func parseDocumentXML(content string) (*documentBody, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		body       documentBody
		tableDepth int
		inText     bool
		inRun      bool
		paragraph  strings.Builder
		cell       []string
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode document xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "tc":
				if tableDepth == 1 {
					cell = cell[:0]
				}
			case "p":
				paragraph.Reset()
			case "r":
				inRun = true
			case "t":
				inText = true
			case "tab":
				if inRun {
					paragraph.WriteString("\t")
				}
			case "br", "cr":
				if inRun {
					paragraph.WriteString("\n")
				}
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "tc":
				if tableDepth == 1 {
					text := strings.Join(cell, "\n")
					if strings.TrimSpace(text) != "" {
						body.cells = append(body.cells, text)
					}
				}
			case "p":
				text := paragraph.String()
				if tableDepth > 0 {
					cell = append(cell, text)
				} else if strings.TrimSpace(text) != "" {
					body.paragraphs = append(body.paragraphs, text)
				}
				paragraph.Reset()
			case "r":
				inRun = false
			case "t":
				inText = false
			}

		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	return &body, nil
}
