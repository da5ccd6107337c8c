package services

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shamim-001/portfolio-backend/errs"
)

func TestUploadRelaySave(t *testing.T) {
	dir := t.TempDir()
	relay := NewUploadRelay(dir)

	content := []byte("fake png bytes")
	result, err := relay.Save("my photo (1).png", "image/png", int64(len(content)), bytes.NewReader(content))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !strings.HasPrefix(result.URL, "/uploads/") {
		t.Errorf("Save() url = %q, want /uploads/ prefix", result.URL)
	}
	if result.OriginalName != "my photo (1).png" {
		t.Errorf("Save() originalName = %q", result.OriginalName)
	}
	if result.Size != int64(len(content)) {
		t.Errorf("Save() size = %d, want %d", result.Size, len(content))
	}
	if strings.ContainsAny(result.FileName, " ()") {
		t.Errorf("Save() fileName %q was not sanitized", result.FileName)
	}

	stored, err := os.ReadFile(filepath.Join(dir, result.FileName))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("stored file content differs from upload")
	}
}

func TestUploadRelayRejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		mimeType string
		size     int64
	}{
		{
			name:     "oversized declared size",
			filename: "big.png",
			mimeType: "image/png",
			size:     6 * 1024 * 1024,
		},
		{
			// renamed executable: extension passes, MIME must fail on its own
			name:     "octet stream with png extension",
			filename: "app.png",
			mimeType: "application/octet-stream",
			size:     100,
		},
		{
			name:     "disallowed extension with image MIME",
			filename: "app.exe",
			mimeType: "image/png",
			size:     100,
		},
		{
			name:     "svg not in allow list",
			filename: "logo.svg",
			mimeType: "image/svg+xml",
			size:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			relay := NewUploadRelay(dir)

			_, err := relay.Save(tt.filename, tt.mimeType, tt.size, bytes.NewReader([]byte("x")))
			if err == nil {
				t.Fatal("Save() expected error, got nil")
			}

			// nothing may be written on rejection
			entries, readErr := os.ReadDir(dir)
			if readErr != nil {
				t.Fatal(readErr)
			}
			if len(entries) != 0 {
				t.Errorf("Save() wrote %d files despite rejection", len(entries))
			}
		})
	}
}

func TestUploadRelayActualSizeRecheck(t *testing.T) {
	relay := NewUploadRelay(t.TempDir())

	// declared size lies, actual stream is over the cap
	oversized := bytes.Repeat([]byte("a"), MaxUploadSize+1)
	_, err := relay.Save("big.png", "image/png", 100, bytes.NewReader(oversized))
	if err == nil {
		t.Fatal("Save() expected error for oversized stream, got nil")
	}

	var apiErr *errs.ApiErr
	if !asApiErr(err, &apiErr) || apiErr.StatusCode != 400 {
		t.Errorf("Save() error = %v, want 400", err)
	}
}

func asApiErr(err error, target **errs.ApiErr) bool {
	e, ok := err.(*errs.ApiErr)
	if ok {
		*target = e
	}
	return ok
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "photo.png", want: "photo.png"},
		{in: "my photo.png", want: "my_photo.png"},
		{in: "../../etc/passwd.png", want: ".._.._etc_passwd.png"},
		{in: "ü é.png", want: "___.png"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
