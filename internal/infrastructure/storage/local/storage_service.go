package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/praxisapp/praxis/internal/domain/services"
)

type StorageService struct {
	basePath string
}

func NewStorageService(basePath string) *StorageService {
	return &StorageService{
		basePath: basePath,
	}
}

func (s *StorageService) Store(ctx context.Context, params services.StorageParams) (string, error) {
	dir := filepath.Join(s.basePath, "documents")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	fileExt := filepath.Ext(params.Filename)
	fileName := fmt.Sprintf("%s%s", uuid.New().String(), fileExt)
	fullPath := filepath.Join(dir, fileName)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, params.FileReader); err != nil {
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	return filepath.Join("documents", fileName), nil
}

func (s *StorageService) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *StorageService) Delete(ctx context.Context, path string) error {
	if err := os.Remove(filepath.Join(s.basePath, path)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
