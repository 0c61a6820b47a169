package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panbanda/statcalc/internal/testutil"
	"github.com/panbanda/statcalc/pkg/config"
)

func TestNewScanner(t *testing.T) {
	s := NewScanner(nil)
	if s == nil {
		t.Fatal("NewScanner(nil) returned nil")
	}
	if !s.gitignore {
		t.Error("default scanner should honor .gitignore")
	}

	cfg := config.DefaultConfig()
	cfg.Batch.Exclude = []string{"raw/"}
	cfg.Batch.Gitignore = false
	s = NewScanner(cfg)
	if s.gitignore {
		t.Error("gitignore should follow config")
	}
	if len(s.exclude) != 1 || s.exclude[0] != "raw/" {
		t.Errorf("exclude = %v, want [raw/]", s.exclude)
	}
}

func relSet(t *testing.T, root string, files []string) map[string]bool {
	t.Helper()
	found := make(map[string]bool, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			t.Fatalf("Rel(%s): %v", f, err)
		}
		found[filepath.ToSlash(rel)] = true
	}
	return found
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFileTree(t, tmpDir, map[string]string{
		"a.csv":             "x\n1\n",
		"b.txt":             "1\n2\n",
		"nested/c.CSV":      "x\n1\n",
		"nested/deep/d.txt": "3\n",
		"notes.md":          "# notes\n",
		"data.json":         "{}\n",
	})

	result, err := NewScanner(nil).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	found := relSet(t, tmpDir, result)
	for _, want := range []string{"a.csv", "b.txt", "nested/c.CSV", "nested/deep/d.txt"} {
		if !found[want] {
			t.Errorf("ScanDir() did not find %s (got %v)", want, result)
		}
	}
	if len(result) != 4 {
		t.Errorf("ScanDir() found %d files, want 4: %v", len(result), result)
	}
}

func TestScanDirLexicalOrder(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFileTree(t, tmpDir, map[string]string{
		"c.txt":   "1\n",
		"a.txt":   "1\n",
		"b/z.txt": "1\n",
	})

	result, err := NewScanner(nil).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}
	want := []string{
		filepath.Join(tmpDir, "a.txt"),
		filepath.Join(tmpDir, "b", "z.txt"),
		filepath.Join(tmpDir, "c.txt"),
	}
	if len(result) != len(want) {
		t.Fatalf("ScanDir() = %v, want %v", result, want)
	}
	for i := range want {
		if result[i] != want[i] {
			t.Errorf("result[%d] = %s, want %s", i, result[i], want[i])
		}
	}
}

func TestScanDirSkipsGitDir(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFileTree(t, tmpDir, map[string]string{
		".git/objects/x.txt": "1\n",
		"keep.txt":           "1\n",
	})

	result, err := NewScanner(nil).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}
	if len(result) != 1 || filepath.Base(result[0]) != "keep.txt" {
		t.Errorf("ScanDir() = %v, want only keep.txt", result)
	}
}

func TestScanDirConfigExcludes(t *testing.T) {
	tmpDir := t.TempDir()
	testutil.CreateFileTree(t, tmpDir, map[string]string{
		"keep.csv":        "x\n1\n",
		"raw/skip.csv":    "x\n1\n",
		"scratch.tmp.txt": "1\n",
	})

	cfg := config.DefaultConfig()
	cfg.Batch.Exclude = []string{"raw/", "*.tmp.txt"}
	result, err := NewScanner(cfg).ScanDir(tmpDir)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}

	found := relSet(t, tmpDir, result)
	if len(result) != 1 || !found["keep.csv"] {
		t.Errorf("ScanDir() = %v, want only keep.csv", result)
	}
}

func TestScanDirGitignore(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	testutil.CreateFileTree(t, tmpDir, map[string]string{
		".gitignore":       "ignored/\n*.bak.csv\n",
		"data/keep.csv":    "x\n1\n",
		"data/old.bak.csv": "x\n1\n",
		"ignored/skip.txt": "1\n",
		"data/.gitignore":  "local.txt\n",
		"data/local.txt":   "1\n",
	})

	t.Run("honored", func(t *testing.T) {
		result, err := NewScanner(nil).ScanDir(tmpDir)
		if err != nil {
			t.Fatalf("ScanDir() error: %v", err)
		}
		found := relSet(t, tmpDir, result)
		if len(result) != 1 || !found["data/keep.csv"] {
			t.Errorf("ScanDir() = %v, want only data/keep.csv", result)
		}
	})

	t.Run("scan below git root", func(t *testing.T) {
		sub := filepath.Join(tmpDir, "data")
		result, err := NewScanner(nil).ScanDir(sub)
		if err != nil {
			t.Fatalf("ScanDir() error: %v", err)
		}
		found := relSet(t, sub, result)
		if len(result) != 1 || !found["keep.csv"] {
			t.Errorf("ScanDir() = %v, want only keep.csv", result)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Batch.Gitignore = false
		result, err := NewScanner(cfg).ScanDir(tmpDir)
		if err != nil {
			t.Fatalf("ScanDir() error: %v", err)
		}
		if len(result) != 4 {
			t.Errorf("ScanDir() found %d files, want 4: %v", len(result), result)
		}
	})
}

func TestScanDirSymlinkOutsideRoot(t *testing.T) {
	outside := t.TempDir()
	target := testutil.WriteFile(t, filepath.Join(outside, "secret.csv"), "x\n1\n")

	root := t.TempDir()
	testutil.WriteFile(t, filepath.Join(root, "inside.csv"), "x\n1\n")
	if err := os.Symlink(target, filepath.Join(root, "link.csv")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	result, err := NewScanner(nil).ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir() error: %v", err)
	}
	found := relSet(t, root, result)
	if found["link.csv"] {
		t.Error("symlink escaping the root should be skipped")
	}
	if !found["inside.csv"] {
		t.Error("inside.csv should be found")
	}
}

func TestScanDirMissingRoot(t *testing.T) {
	if _, err := NewScanner(nil).ScanDir("/nonexistent/statcalc/dir"); err == nil {
		t.Error("ScanDir() should return error for missing root")
	}
}

func TestScanPaths(t *testing.T) {
	tmpDir := t.TempDir()
	paths := testutil.CreateFileTree(t, tmpDir, map[string]string{
		"dir/a.csv":    "x\n1\n",
		"dir/b.txt":    "1\n",
		"explicit.dat": "1\n",
	})
	missing := filepath.Join(tmpDir, "missing.csv")

	result, err := NewScanner(nil).ScanPaths([]string{
		paths["explicit.dat"],
		filepath.Join(tmpDir, "dir"),
		missing,
		paths["dir/a.csv"],
	})
	if err != nil {
		t.Fatalf("ScanPaths() error: %v", err)
	}

	want := []string{
		paths["explicit.dat"],
		filepath.Join(tmpDir, "dir", "a.csv"),
		filepath.Join(tmpDir, "dir", "b.txt"),
		missing,
	}
	if len(result) != len(want) {
		t.Fatalf("ScanPaths() = %v, want %v", result, want)
	}
	for i := range want {
		if result[i] != want[i] {
			t.Errorf("result[%d] = %s, want %s", i, result[i], want[i])
		}
	}
}

func TestScanPathsEmptyDir(t *testing.T) {
	result, err := NewScanner(nil).ScanPaths([]string{t.TempDir()})
	if err != nil {
		t.Fatalf("ScanPaths() error: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("ScanPaths() = %v, want none", result)
	}
}

func TestIsWithinRoot(t *testing.T) {
	tests := []struct {
		path string
		root string
		want bool
	}{
		{"/data/a.csv", "/data", true},
		{"/data", "/data", true},
		{"/data2/a.csv", "/data", false},
		{"/other/a.csv", "/data", false},
		{"/data/sub/../a.csv", "/data", true},
	}
	for _, tt := range tests {
		if got := isWithinRoot(tt.path, tt.root); got != tt.want {
			t.Errorf("isWithinRoot(%q, %q) = %v, want %v", tt.path, tt.root, got, tt.want)
		}
	}
}
