package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/municipalreports/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrBadImageType    = errors.New("only JPEG and PNG files are allowed")
	ErrImageTooLarge   = errors.New("file size must be less than 5MB")
	ErrNoImage         = errors.New("report has no image")
	ErrImageNotFound   = errors.New("image not found")
	ErrInvalidFilename = errors.New("invalid filename")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// UploadService stores report images in a flat uploads directory and keeps
// the report's image reference in sync.
type UploadService struct {
	db       *gorm.DB
	dir      string
	maxBytes int64
}

func NewUploadService(db *gorm.DB, dir string, maxBytes int64) *UploadService {
	return &UploadService{db: db, dir: dir, maxBytes: maxBytes}
}

// Attach validates and stores an uploaded image for the report, replacing
// any previous one. Returns the public image path.
func (s *UploadService) Attach(reportID uint, file *multipart.FileHeader) (string, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrReportNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if file == nil || file.Size == 0 {
		return "", ErrNoFile
	}
	if !allowedImageTypes[strings.ToLower(file.Header.Get("Content-Type"))] {
		return "", ErrBadImageType
	}
	if file.Size > s.maxBytes {
		return "", ErrImageTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}

	if report.ReportImage != "" {
		s.removeFile(report.ReportImage)
	}

	name := fmt.Sprintf("%d_%s%s", reportID, uuid.New(), filepath.Ext(file.Filename))
	if err := s.saveFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", err
	}

	imagePath := "/uploads/" + name
	if err := s.db.Model(&report).Updates(map[string]interface{}{
		"report_image": imagePath,
		"updated_at":   time.Now(),
	}).Error; err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return imagePath, nil
}

// Remove deletes the report's image file and clears its reference.
func (s *UploadService) Remove(reportID uint) error {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if report.ReportImage == "" {
		return ErrNoImage
	}

	s.removeFile(report.ReportImage)

	if err := s.db.Model(&report).Updates(map[string]interface{}{
		"report_image": "",
		"updated_at":   time.Now(),
	}).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Resolve maps a bare filename to its path on disk and content type.
// Rejects anything that could escape the uploads directory.
func (s *UploadService) Resolve(filename string) (string, string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", "", ErrInvalidFilename
	}

	path := filepath.Join(s.dir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", "", ErrImageNotFound
	}

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	}
	return path, contentType, nil
}

func (s *UploadService) saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// removeFile best-effort deletes a stored image by its public path.
func (s *UploadService) removeFile(imagePath string) {
	name := filepath.Base(imagePath)
	if name == "" || name == "." {
		return
	}
	_ = os.Remove(filepath.Join(s.dir, name))
}
