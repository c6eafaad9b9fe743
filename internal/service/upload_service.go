package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/usecase"
	"github.com/fadilmartias/neuraview/internal/util"
	"github.com/google/uuid"
)

const UploadRoute = "/uploads"

var (
	ErrFileTooLarge    = errors.New("file is too large")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("file is empty")
)

// UploadService stores resumes on local disk and serves them under
// UploadRoute. PDFs are stored as a PNG of their first page.
type UploadService struct {
	uploadPath  string
	maxFileSize int64
	baseURL     string
}

func NewUploadService(cfg *config.UploadConfig, baseURL string) *UploadService {
	return &UploadService{
		uploadPath:  cfg.Path,
		maxFileSize: cfg.MaxFileSize,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

func (s *UploadService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (s *UploadService) Upload(ctx context.Context, file usecase.ResumeFile) (string, error) {
	if len(file.Data) == 0 {
		return "", ErrEmptyFile
	}
	if s.maxFileSize > 0 && int64(len(file.Data)) > s.maxFileSize {
		return "", fmt.Errorf("%w (max %d bytes)", ErrFileTooLarge, s.maxFileSize)
	}

	data, ext, err := s.normalize(file)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(s.GetFilePath(name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return s.baseURL + UploadRoute + "/" + name, nil
}

func (s *UploadService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

// normalize sniffs the content and returns the bytes to store with their
// extension.
func (s *UploadService) normalize(file usecase.ResumeFile) ([]byte, string, error) {
	contentType := http.DetectContentType(file.Data)
	switch {
	case contentType == "application/pdf":
		page, err := util.RenderPDFPage(file.Data, 0)
		if err != nil {
			return nil, "", fmt.Errorf("render pdf: %w", err)
		}
		return page, ".png", nil
	case contentType == "image/png":
		return file.Data, ".png", nil
	case contentType == "image/jpeg":
		return file.Data, ".jpg", nil
	case contentType == "image/webp":
		return file.Data, ".webp", nil
	case contentType == "image/gif":
		return file.Data, ".gif", nil
	}
	return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFile, contentType)
}
