package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// MaxDocumentSize caps uploaded PDF documents (student cards, payment
// proofs) at 500 KB. Images are not size-restricted here.
const MaxDocumentSize = 500 * 1024

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var videoTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
}

func ValidateImageFile(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if !imageTypes[contentType] {
		return fmt.Errorf("file type not allowed: %s", contentType)
	}
	return nil
}

func ValidateMediaFile(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	if !imageTypes[contentType] && !videoTypes[contentType] {
		return fmt.Errorf("file type not allowed: %s", contentType)
	}
	return nil
}

// ValidateDocumentFile checks registration proof uploads: PDFs up to
// MaxDocumentSize, or an image of the document.
func ValidateDocumentFile(file *multipart.FileHeader) error {
	contentType := file.Header.Get("Content-Type")
	switch {
	case contentType == "application/pdf":
		if file.Size > MaxDocumentSize {
			return fmt.Errorf("PDF documents must be at most %d KB", MaxDocumentSize/1024)
		}
		return nil
	case imageTypes[contentType]:
		return nil
	default:
		return fmt.Errorf("file type not allowed: %s", contentType)
	}
}

// BlobFilename builds the stored name for an upload:
// a timestamp prefix keeps repeated uploads of the same file distinct.
func BlobFilename(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(originalName))
}

// SaveUploadedFile stores an upload under destDir/category/filename and
// returns the path relative to destDir, using forward slashes.
func SaveUploadedFile(file *multipart.FileHeader, destDir, category, filename string) (string, error) {
	dir := filepath.Join(destDir, category)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return category + "/" + filename, nil
}
