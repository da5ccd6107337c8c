package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Storage & business-rule sentinels
var (
	ErrNotFound           = errors.New("not found")
	ErrFeatureLimit       = errors.New("feature limit exceeded")
	ErrCorruptCollection  = errors.New("corrupt collection file")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrBusy               = errors.New("collection busy")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewFeatureLimitError reports an attempt to feature more records than the
// collection allows. The request is rejected, never resolved by unfeaturing
// another record.
func NewFeatureLimitError(entity string, limit int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrFeatureLimit,
		Details:    fmt.Sprintf("Cannot feature more than %d %s. Please unfeature an existing one first.", limit, entity),
		Field:      "featured",
	}
}

// NewCorruptCollectionError reports an unparseable collection file. This is
// fatal for the request: treating corrupt data as empty would overwrite the
// existing records on the next save.
func NewCorruptCollectionError(path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrCorruptCollection,
		Details:    fmt.Sprintf("Collection file %s is not a valid JSON array and needs operator attention", path),
		Cause:      cause,
	}
}

func NewStorageError(operation, path string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageUnavailable,
		Details:    fmt.Sprintf("Failed to %s %s", operation, path),
		Cause:      cause,
	}
}

func NewBusyError(path string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrBusy,
		Details:    fmt.Sprintf("Timed out waiting for exclusive access to %s", path),
	}
}

func IsFeatureLimit(err error) bool {
	return errors.Is(err, ErrFeatureLimit)
}

func IsCorruptCollection(err error) bool {
	return errors.Is(err, ErrCorruptCollection)
}

func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

func IsBusy(err error) bool {
	return errors.Is(err, ErrBusy)
}
