package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    StringList
		wantErr bool
	}{
		{name: "array", json: `["a","b"]`, want: StringList{"a", "b"}},
		{name: "comma string", json: `"a, b"`, want: StringList{"a", "b"}},
		{name: "string with empties", json: `"a,, b ,"`, want: StringList{"a", "b"}},
		{name: "single value", json: `"seo"`, want: StringList{"seo"}},
		{name: "empty string", json: `""`, want: StringList{}},
		{name: "empty array", json: `[]`, want: StringList{}},
		{name: "number", json: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			err := json.Unmarshal([]byte(tt.json), &got)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Unmarshal() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Unmarshal() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSplitTrimmed(t *testing.T) {
	got := SplitTrimmed(" seo , web design ,local")
	want := []string{"seo", "web design", "local"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTrimmed() = %v, want %v", got, want)
	}
}
