package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"alfredoptarigan/cv-analyzer/internal/extractor"
)

// DefaultMaxFileSize is 5 MiB.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// UploadFile describes a file before its bytes are read.
type UploadFile struct {
	Name string
	Size int64
}

// ValidationError lists every problem found in an upload, one message per problem.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", strings.Join(e.Messages, "; "))
}

// ValidateUpload checks every file and collects all problems instead of stopping
// at the first one.
func ValidateUpload(files []UploadFile, maxSize int64) error {
	if len(files) == 0 {
		return &ValidationError{Messages: []string{"Please upload at least one CV."}}
	}

	var messages []string
	for _, f := range files {
		if !supportedExtension(f.Name) {
			messages = append(messages, fmt.Sprintf("%s: unsupported file format.", f.Name))
		}
		if f.Size <= 0 {
			messages = append(messages, fmt.Sprintf("%s: file is empty.", f.Name))
		}
		if f.Size > maxSize {
			messages = append(messages, fmt.Sprintf("%s: exceeds %s limit.", f.Name, sizeLabel(maxSize)))
		}
	}

	if len(messages) > 0 {
		return &ValidationError{Messages: messages}
	}
	return nil
}

// ValidateFile is the single-file check of the synchronous API. It returns the
// first problem only.
func ValidateFile(f UploadFile, maxSize int64) error {
	if !supportedExtension(f.Name) {
		return fmt.Errorf("Unsupported file format: %s", strings.ToLower(filepath.Ext(f.Name)))
	}
	if f.Size <= 0 {
		return fmt.Errorf("File is empty")
	}
	if f.Size > maxSize {
		return fmt.Errorf("File size exceeds %s limit", sizeLabel(maxSize))
	}
	return nil
}

func supportedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, s := range extractor.SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

func sizeLabel(n int64) string {
	const mib = 1024 * 1024
	if n >= mib && n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
