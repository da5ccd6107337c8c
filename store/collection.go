package store

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/shamim-001/portfolio-backend/errs"
)

const (
	defaultLockWait  = 5 * time.Second
	defaultIOTimeout = 10 * time.Second
)

// collection owns a single JSON-array file. Every operation holds the
// semaphore for its whole read-modify-write cycle, so concurrent mutations
// on the same collection queue instead of clobbering each other; waiters
// give up with a Busy error after lockWait. The lock is in-process only:
// a second process writing the same file can still race.
type collection[T any] struct {
	path      string
	sem       *semaphore.Weighted
	lockWait  time.Duration
	ioTimeout time.Duration
}

func newCollection[T any](path string) *collection[T] {
	return &collection[T]{
		path:      path,
		sem:       semaphore.NewWeighted(1),
		lockWait:  defaultLockWait,
		ioTimeout: defaultIOTimeout,
	}
}

func (c *collection[T]) lock(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, c.lockWait)
	defer cancel()

	if err := c.sem.Acquire(waitCtx, 1); err != nil {
		return errs.NewBusyError(c.path)
	}
	return nil
}

func (c *collection[T]) unlock() {
	c.sem.Release(1)
}

// load reads and decodes the collection file. A missing file is an empty
// collection, never an error.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := readFileBounded(ctx, c.path, c.ioTimeout)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, errs.NewStorageError("read", c.path, err)
	}
	return decodeCollection[T](c.path, raw)
}

// save re-encodes and rewrites the whole collection file, creating the data
// directory on first write.
func (c *collection[T]) save(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}

	encoded, err := encodeCollection(records)
	if err != nil {
		return errs.NewStorageError("encode", c.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return errs.NewStorageError("create directory for", c.path, err)
	}

	if err := writeFileBounded(ctx, c.path, encoded, c.ioTimeout); err != nil {
		return errs.NewStorageError("write", c.path, err)
	}
	return nil
}

// ensure creates the file as an empty array if it does not exist yet, so
// external readers like the sitemap generator find a valid file.
func (c *collection[T]) ensure(ctx context.Context) error {
	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errs.NewStorageError("stat", c.path, err)
	}
	return c.save(ctx, []T{})
}

type readResult struct {
	data []byte
	err  error
}

// readFileBounded runs the read in a goroutine so a hung filesystem fails
// the request after the timeout instead of blocking it forever.
func readFileBounded(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan readResult, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- readResult{data, err}
	}()

	select {
	case res := <-done:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func writeFileBounded(ctx context.Context, path string, data []byte, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- os.WriteFile(path, data, 0o644)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
