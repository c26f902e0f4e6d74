package extractor

import (
	"bytes"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const emptyTextFile = "Empty text file"

type textDecoder struct {
	name   string
	decode func([]byte) (string, bool)
}

// textDecoders are tried in order; the first clean decode wins.
var textDecoders = []textDecoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "utf-16", decode: decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM))},
	{name: "latin-1", decode: decodeWith(charmap.ISO8859_1)},
	{name: "cp1252", decode: decodeWith(charmap.Windows1252)},
}

func (e *TextExtractor) extractTXT(data []byte) ExtractedText {
	for _, d := range textDecoders {
		text, ok := d.decode(data)
		if !ok {
			e.logger.Debug("text decode attempt failed", zap.String("encoding", d.name))
			continue
		}
		return finish(text, emptyTextFile)
	}

	e.logger.Warn("could not decode text file", zap.Int("bytes", len(data)))
	return failure(FailureDecode, "Error: Could not decode text file with any supported encoding")
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeUTF8(data []byte) (string, bool) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// decodeWith treats an error or any replacement rune in the output as a failed decode.
func decodeWith(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		if bytes.ContainsRune(out, utf8.RuneError) {
			return "", false
		}
		return string(out), true
	}
}
