package models

import (
	"encoding/json"
	"strings"
)

// StringList decodes either a JSON array of strings or a single
// comma-delimited string. Admin forms submit tags both ways.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*l = asList
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}

	*l = SplitTrimmed(asString)
	return nil
}

// SplitTrimmed splits a comma-delimited string into trimmed entries,
// dropping any that end up empty.
func SplitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
