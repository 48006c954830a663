package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize is the per-file limit for abstract and full-paper uploads.
const MaxUploadSize = 20 * 1024 * 1024 // 20MB

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ValidateUpload checks size and extension of an uploaded file.
func ValidateUpload(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file '%s' exceeds the 20MB limit", file.Filename)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		return fmt.Errorf("file type '%s' not allowed (allowed: PDF, DOC, DOCX, JPEG, PNG)", ext)
	}
	return nil
}

// UploadDir resolves and creates the storage directory for a category of
// uploads under UPLOAD_PATH.
func UploadDir(category string) (string, error) {
	base := os.Getenv("UPLOAD_PATH")
	if base == "" {
		base = "./uploads"
	}
	dir := filepath.Join(base, category)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}
	return dir, nil
}

// StoredFilename builds a collision-free name for a stored upload while
// keeping the original extension.
func StoredFilename(prefix, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return prefix + "-" + uuid.NewString() + ext
}
