// Package scanner expands file and directory arguments into dataset files.
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/panbanda/statcalc/pkg/config"
	"github.com/panbanda/statcalc/pkg/dataset"
)

// Scanner finds dataset files in a directory.
type Scanner struct {
	exclude   []string
	gitignore bool
}

// NewScanner creates a scanner using the batch exclusion settings of cfg.
func NewScanner(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Scanner{
		exclude:   cfg.Batch.Exclude,
		gitignore: cfg.Batch.Gitignore,
	}
}

// ScanPaths expands paths in order. Regular files are kept as given whatever
// their extension; directories contribute the dataset files beneath them.
// Paths that cannot be stat'ed are passed through so the caller reports them
// per file. Duplicates are dropped.
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool, len(paths))
	files := make([]string, 0, len(paths))
	add := func(p string) {
		key := filepath.Clean(p)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(p)
			continue
		}
		found, err := s.ScanDir(p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}

// findGitRoot walks up from start looking for a .git directory.
// Returns empty string if not in a git repository.
func findGitRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// matcher combines configured patterns with the repository's .gitignore
// files. Paths are matched relative to the returned base directory.
func (s *Scanner) matcher(root string) (gitignore.Matcher, string) {
	base := root
	var patterns []gitignore.Pattern

	for _, p := range s.exclude {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}

	if s.gitignore {
		if gitRoot := findGitRoot(root); gitRoot != "" {
			base = gitRoot
			if gitPatterns, err := gitignore.ReadPatterns(osfs.New(gitRoot), nil); err == nil {
				patterns = append(patterns, gitPatterns...)
			}
		}
	}

	if len(patterns) == 0 {
		return nil, base
	}
	return gitignore.NewMatcher(patterns), base
}

// ScanDir recursively collects files with a dataset extension under root,
// in lexical order. Symlinks resolving outside root are skipped.
func (s *Scanner) ScanDir(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	absRoot, err = filepath.EvalSymlinks(absRoot)
	if err != nil {
		return nil, err
	}

	m, base := s.matcher(absRoot)
	excluded := func(path string, isDir bool) bool {
		if m == nil {
			return false
		}
		rel, err := filepath.Rel(base, path)
		if err != nil || rel == "." {
			return false
		}
		return m.Match(strings.Split(rel, string(filepath.Separator)), isDir)
	}

	var files []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithinRoot(resolved, absRoot) {
				return nil
			}
		}

		if d.IsDir() {
			if path != absRoot && (d.Name() == ".git" || excluded(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}

		if excluded(path, false) {
			return nil
		}
		if _, err := dataset.FormatForPath(path); err == nil {
			files = append(files, relativeTo(root, absRoot, path))
		}
		return nil
	})

	return files, walkErr
}

// relativeTo rewrites a path under absRoot to sit under root as the caller
// spelled it, so results read like the arguments that produced them.
func relativeTo(root, absRoot, path string) string {
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}

// isWithinRoot checks if a path is contained within the root directory.
func isWithinRoot(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absPath = filepath.Clean(absPath)
	root = filepath.Clean(root)

	// Add separator to prevent "/root2" matching "/root"
	return absPath == root || strings.HasPrefix(absPath, root+string(filepath.Separator))
}
