// Package testutil holds file fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
	return path
}

// ReadFile reads content from a file.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error: %v", path, err)
	}
	return string(data)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateFileTree creates multiple files under root from a map of
// relative path -> content and returns the written paths by name.
func CreateFileTree(t *testing.T, root string, files map[string]string) map[string]string {
	t.Helper()
	paths := make(map[string]string, len(files))
	for name, content := range files {
		paths[name] = WriteFile(t, filepath.Join(root, name), content)
	}
	return paths
}

// KnownSample is a small dataset with mean 5 and sample variance 32/7.
const KnownSample = "2\n4\n4\n4\n5\n5\n7\n9\n"

// KnownCSV holds KnownSample in its "value" column, beside an id column
// and a text column.
const KnownCSV = "id,value,label\n1,2,a\n2,4,b\n3,4,c\n4,4,d\n5,5,e\n6,5,f\n7,7,g\n8,9,h\n"
