package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// InviteHeader is the canonical CSV header row.
const InviteHeader = "id,name,phone,token,status,invite_link"

// WriteCSV writes the header followed by rows to path and returns path.
func WriteCSV(t testing.TB, path string, rows ...string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	lines := append([]string{InviteHeader}, rows...)
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
