package store

import (
	"encoding/json"
	"fmt"

	"github.com/shamim-001/portfolio-backend/errs"
)

// decodeCollection parses the on-disk JSON array for a collection. Anything
// that is not a valid JSON array is reported as a corrupt collection rather
// than silently treated as empty, since an empty result would overwrite the
// existing records on the next save.
func decodeCollection[T any](path string, raw []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errs.NewCorruptCollectionError(path, err)
	}
	if records == nil {
		return nil, errs.NewCorruptCollectionError(path, fmt.Errorf("expected a JSON array, got null"))
	}
	return records, nil
}

// encodeCollection serializes records as indented JSON. Output is
// deterministic for the same input, which keeps the data files diffable.
func encodeCollection[T any](records []T) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}
