package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUpload_CollectsEveryProblem(t *testing.T) {
	err := ValidateUpload([]UploadFile{
		{Name: "ok.pdf", Size: 10},
		{Name: "notes.rtf", Size: 0},
		{Name: "huge.DOCX", Size: DefaultMaxFileSize + 1},
	}, DefaultMaxFileSize)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{
		"notes.rtf: unsupported file format.",
		"notes.rtf: file is empty.",
		"huge.DOCX: exceeds 5MB limit.",
	}, verr.Messages)
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload([]UploadFile{{Name: "a.txt", Size: DefaultMaxFileSize}}, DefaultMaxFileSize))

	var verr *ValidationError
	require.ErrorAs(t, ValidateUpload(nil, DefaultMaxFileSize), &verr)
	assert.Equal(t, []string{"Please upload at least one CV."}, verr.Messages)
}

func TestValidateFile(t *testing.T) {
	assert.NoError(t, ValidateFile(UploadFile{Name: "cv.doc", Size: 1}, DefaultMaxFileSize))
	assert.EqualError(t, ValidateFile(UploadFile{Name: "cv.RTF", Size: 1}, DefaultMaxFileSize), "Unsupported file format: .rtf")
	assert.EqualError(t, ValidateFile(UploadFile{Name: "cv.pdf", Size: 0}, DefaultMaxFileSize), "File is empty")
	assert.EqualError(t, ValidateFile(UploadFile{Name: "cv.pdf", Size: 11}, 10), "File size exceeds 10 bytes limit")
}
