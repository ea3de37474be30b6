package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteLog replaces the file at path with lines, one per line.
func WriteLog(t testing.TB, path string, lines ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(joinLines(lines)), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// AppendLog adds lines to the end of the file at path.
func AppendLog(t testing.TB, path string, lines ...string) {
	t.Helper()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(joinLines(lines)); err != nil {
		t.Fatalf("append %s: %v", path, err)
	}
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
