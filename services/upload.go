package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/shamim-001/portfolio-backend/errs"
)

// MaxUploadSize is the ceiling for a single uploaded file.
const MaxUploadSize = 5 * 1024 * 1024 // 5 MiB

var allowedMIMETypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadResult describes a stored upload. URL is relative to the public
// root and is what record image fields store verbatim.
type UploadResult struct {
	URL          string `json:"url"`
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
}

// UploadRelay validates image uploads and writes them under the public
// uploads directory with collision-resistant names.
type UploadRelay struct {
	dir string
}

func NewUploadRelay(dir string) *UploadRelay {
	return &UploadRelay{dir: dir}
}

// Save checks the declared size, MIME type and file extension (all three
// must pass), then writes the bytes under a generated filename. The relay
// never truncates an oversized payload.
func (u *UploadRelay) Save(originalName, mimeType string, declaredSize int64, content io.Reader) (*UploadResult, error) {
	if declaredSize > MaxUploadSize {
		return nil, errs.NewMaxBodySizeExceededError(MaxUploadSize)
	}
	if !slices.Contains(allowedMIMETypes, mimeType) {
		return nil, errs.NewUnsupportedMediaTypeError(mimeType, allowedMIMETypes)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if !slices.Contains(allowedExtensions, ext) {
		return nil, errs.NewInvalidFieldError("file", fmt.Sprintf("extension %q not allowed, allowed: %v", ext, allowedExtensions))
	}

	// The declared size is client-supplied, so re-check while reading.
	data, err := io.ReadAll(io.LimitReader(content, MaxUploadSize+1))
	if err != nil {
		return nil, errs.NewBadRequestError("failed to read uploaded file")
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, errs.NewMaxBodySizeExceededError(MaxUploadSize)
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, errs.NewStorageError("create directory", u.dir, err)
	}

	fileName := uuid.New().String() + "-" + sanitizeFilename(originalName)
	path := filepath.Join(u.dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errs.NewStorageError("write", path, err)
	}

	return &UploadResult{
		URL:          "/uploads/" + fileName,
		FileName:     fileName,
		OriginalName: originalName,
		Size:         int64(len(data)),
		Type:         mimeType,
	}, nil
}

func sanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
