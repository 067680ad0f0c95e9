package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestRequestID(t *testing.T) {
	pattern := regexp.MustCompile(`^req-[a-zA-Z0-9]{12}$`)
	for i := 0; i < 100; i++ {
		id, err := RequestID()
		if err != nil {
			t.Fatalf("RequestID() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("RequestID() = %q, does not match %s", id, pattern)
		}
	}
}

func TestExportID(t *testing.T) {
	id, err := ExportID()
	if err != nil {
		t.Fatalf("ExportID() error: %v", err)
	}
	if !strings.HasPrefix(id, ExportPrefix) {
		t.Errorf("ExportID() = %q, want prefix %q", id, ExportPrefix)
	}
	if len(id) != len(ExportPrefix)+Length {
		t.Errorf("len(ExportID()) = %d, want %d", len(id), len(ExportPrefix)+Length)
	}
}

func TestGenerateWithPrefix_EmptyPrefix(t *testing.T) {
	id, err := GenerateWithPrefix("")
	if err != nil {
		t.Fatalf("GenerateWithPrefix(\"\") error: %v", err)
	}
	if len(id) != Length {
		t.Errorf("len = %d, want %d", len(id), Length)
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := RequestID()
		if err != nil {
			t.Fatalf("RequestID() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
