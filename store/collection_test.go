package store

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/shamim-001/portfolio-backend/errs"
	"github.com/shamim-001/portfolio-backend/models"
)

func TestLoadReadErrorIsStorageUnavailable(t *testing.T) {
	// a directory at the collection path fails the read with something
	// other than "not found", which must not be treated as empty
	col := newCollection[models.Project](t.TempDir())

	_, err := col.load(context.Background())
	if !errs.IsStorageUnavailable(err) {
		t.Fatalf("load() error = %v, want storage unavailable", err)
	}
}

func TestLoadTimeoutIsStorageUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	// a FIFO with no writer blocks the read until the deadline
	if err := syscall.Mkfifo(path, 0o600); err != nil {
		t.Skipf("mkfifo not supported here: %v", err)
	}
	t.Cleanup(func() {
		// unblock the reader goroutine left waiting on the FIFO
		if f, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, 0); err == nil {
			f.Close()
		}
	})

	col := newCollection[models.Project](path)
	col.ioTimeout = 30 * time.Millisecond

	_, err := col.load(context.Background())
	if !errs.IsStorageUnavailable(err) {
		t.Fatalf("load() error = %v, want storage unavailable", err)
	}
}

func TestSaveMkdirErrorIsStorageUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// the parent of the collection path is a regular file
	col := newCollection[models.Project](filepath.Join(blocker, "projects.json"))

	err := col.save(context.Background(), []models.Project{})
	if !errs.IsStorageUnavailable(err) {
		t.Fatalf("save() error = %v, want storage unavailable", err)
	}
}
