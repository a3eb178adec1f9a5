package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	supabase "github.com/nedpals/supabase-go"
	"github.com/praxisapp/praxis/internal/domain/services"
)

type StorageService struct {
	client     *supabase.Client
	bucketName string
}

type Config struct {
	URL    string
	APIKey string
	Bucket string
}

func NewStorageService(config Config) (*StorageService, error) {
	client := supabase.CreateClient(config.URL, config.APIKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Supabase client")
	}

	return &StorageService{
		client:     client,
		bucketName: config.Bucket,
	}, nil
}

func (s *StorageService) Store(ctx context.Context, params services.StorageParams) (string, error) {
	// Object names are opaque; the original filename only survives in the
	// document row.
	fileExt := filepath.Ext(params.Filename)
	fileName := fmt.Sprintf("documents/%s%s", uuid.New().String(), fileExt)

	content, err := io.ReadAll(params.FileReader)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}

	fileOptions := &supabase.FileUploadOptions{
		ContentType: params.ContentType,
		Upsert:      false,
	}

	response := s.client.Storage.From(s.bucketName).Upload(fileName, bytes.NewReader(content), fileOptions)
	if response.Key == "" {
		return "", fmt.Errorf("failed to upload file to Supabase: %s", response.Message)
	}

	return fileName, nil
}

func (s *StorageService) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	content, err := s.client.Storage.From(s.bucketName).Download(path)
	if err != nil {
		return nil, fmt.Errorf("failed to download file from Supabase: %w", err)
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}

func (s *StorageService) Delete(ctx context.Context, path string) error {
	response := s.client.Storage.From(s.bucketName).Remove([]string{path})
	if response.Key == "" {
		return fmt.Errorf("failed to delete file from Supabase: %s", response.Message)
	}

	return nil
}
