package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/pkg/logger"
)

var (
	ErrDocumentTooLarge  = errors.New("document exceeds maximum size limit")
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// DocumentServiceConfig holds upload limits for the document service.
type DocumentServiceConfig struct {
	MaxFileSize      int64 // bytes
	AllowedMimeTypes []string
}

// DocumentService handles document business logic: upload validation, blob
// placement and the metadata row kept in the database.
type DocumentService struct {
	docRepo repositories.DocumentRepository
	storage StorageService
	config  DocumentServiceConfig
	logger  *logger.Logger
}

func NewDocumentService(
	docRepo repositories.DocumentRepository,
	storage StorageService,
	config DocumentServiceConfig,
	logger *logger.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		storage: storage,
		config:  config,
		logger:  logger,
	}
}

// UploadDocumentParams contains parameters for document upload.
type UploadDocumentParams struct {
	File        *multipart.FileHeader
	FileReader  io.Reader
	Title       string
	Description string
	Category    models.DocumentCategory
	Status      models.DocumentStatus
	ClientID    *uint
	UploadedBy  *uint
}

// Upload validates the file, stores the blob and records the metadata row.
// The blob is removed again when the row cannot be written.
func (s *DocumentService) Upload(ctx context.Context, params UploadDocumentParams) (*models.Document, error) {
	if s.config.MaxFileSize > 0 && params.File.Size > s.config.MaxFileSize {
		return nil, ErrDocumentTooLarge
	}

	contentType := params.File.Header.Get("Content-Type")
	if !s.mimeTypeAllowed(contentType) {
		return nil, ErrUnsupportedFormat
	}

	path, err := s.storage.Store(ctx, StorageParams{
		FileReader:  params.FileReader,
		Filename:    params.File.Filename,
		ContentType: contentType,
		Size:        params.File.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	title := params.Title
	if title == "" {
		title = params.File.Filename
	}
	status := params.Status
	if status == "" {
		status = models.DocStatusActive
	}
	category := params.Category
	if category == "" {
		category = models.DocCategoryOther
	}

	document := &models.Document{
		Title:       title,
		Description: params.Description,
		FilePath:    path,
		FileType:    contentType,
		FileSize:    params.File.Size,
		Category:    category,
		Status:      status,
		ClientID:    params.ClientID,
		UploadedBy:  params.UploadedBy,
	}
	if err := s.docRepo.Create(ctx, document); err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			s.logger.Error("failed to remove orphaned blob", "path", path, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return document, nil
}

// Download returns the document metadata and an open reader for its blob.
// The caller closes the reader.
func (s *DocumentService) Download(ctx context.Context, id uint) (*models.Document, io.ReadCloser, error) {
	document, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.storage.Get(ctx, document.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return document, reader, nil
}

// Delete removes the metadata row, then the blob. A blob that cannot be
// removed is reported to the caller; the row deletion already succeeded and
// is not rolled back.
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	document, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, document.FilePath); err != nil {
		s.logger.Error("failed to delete blob for removed document",
			"document_id", id, "path", document.FilePath, "error", err)
		return fmt.Errorf("document removed but blob deletion failed: %w", err)
	}
	return nil
}

func (s *DocumentService) mimeTypeAllowed(contentType string) bool {
	if len(s.config.AllowedMimeTypes) == 0 {
		return true
	}
	for _, allowed := range s.config.AllowedMimeTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}
