package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rsvpsend/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("probe file should be removed, found %d entries", len(entries))
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckInputFile(t *testing.T) {
	path := testsupport.WriteCSV(t, filepath.Join(t.TempDir(), "invites.csv"),
		"1,Ana,+504 1,t,pending,https://x.test/1",
		"2,Luis,none,t,pending,https://x.test/2",
		"3,Marta,+504 3,t,confirmed,https://x.test/3",
	)
	result := CheckInputFile(path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "3 invites, 2 pending") || !strings.Contains(result.Detail, "1 pending without a usable phone") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckInputFile_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("id,name,phone\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckInputFile(path)
	if result.Passed {
		t.Fatal("expected failure for missing columns")
	}
	if !strings.Contains(result.Detail, "token") {
		t.Fatalf("expected missing column in detail, got %q", result.Detail)
	}
}

func TestCheckNtfy(t *testing.T) {
	if result := CheckNtfy(context.Background(), ""); !result.Passed || result.Detail != "Disabled" {
		t.Fatalf("expected disabled pass, got %+v", result)
	}

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ok.Close()
	if result := CheckNtfy(context.Background(), ok.URL+"/reminders"); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}

	denied := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer denied.Close()
	if result := CheckNtfy(context.Background(), denied.URL+"/reminders"); result.Passed {
		t.Fatal("expected failure for forbidden topic")
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteCSV(t, cfg.Paths.InputFile, "1,Ana,+504 1,t,pending,https://x.test/1")

	results := RunAll(context.Background(), cfg, "")
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}
