package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/cv-analyzer/internal/config"
)

var ErrFileNotFound = errors.New("stored file not found")

// StorageService keeps uploaded resumes until an analysis has read them.
// Keys are opaque and generated by Save.
type StorageService interface {
	Save(ctx context.Context, originalName string, data []byte) (string, error)
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	EnsureReady(ctx context.Context) error
}

// NewStorageFromConfig picks the local or S3 driver.
func NewStorageFromConfig(ctx context.Context, cfg config.StorageConfig) (StorageService, error) {
	switch cfg.Driver {
	case "", "local":
		return NewStorageService(cfg.UploadPath), nil
	case "s3":
		return NewS3StorageService(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// storageKey is "cv_<uuid><ext>" with the lowercased original extension.
func storageKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("cv_%s%s", uuid.New().String(), ext)
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureReady(ctx context.Context) error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) Save(ctx context.Context, originalName string, data []byte) (string, error) {
	key := storageKey(originalName)

	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return key, nil
}

func (s *storageService) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *storageService) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// path never escapes uploadPath.
func (s *storageService) path(key string) string {
	return filepath.Join(s.uploadPath, filepath.Base(key))
}
