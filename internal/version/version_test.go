package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	switch {
	case info.Version == "":
		t.Error("version should not be empty")
	case info.Commit == "":
		t.Error("commit should not be empty")
	case info.Date == "":
		t.Error("date should not be empty")
	}
}

func TestBuildInfoString(t *testing.T) {
	s := BuildInfo{Version: "1.2.0", Commit: "abc123", Date: "2026-01-01"}.String()

	for _, part := range []string{"partnerctl 1.2.0", "commit=abc123", "date=2026-01-01"} {
		if !strings.Contains(s, part) {
			t.Errorf("String() = %q, should contain %q", s, part)
		}
	}
}
