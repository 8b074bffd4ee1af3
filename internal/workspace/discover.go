package workspace

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/santoshdahal12/licensegate/pkg/scanners"
)

// noiseDirs are directory names never worth descending into: build output,
// vendored trees, package caches.
var noiseDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"target":       {},
	"vendor":       {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	"bin":          {},
	"obj":          {},
	"dist":         {},
}

// CheckRoot verifies that root exists and is a directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "scan", Path: root, Err: os.ErrInvalid}
	}
	return nil
}

// DiscoverProjects walks the tree under root and returns the project
// roots, sorted by path for deterministic output. A directory counts as a
// project root when any scanner recognizes a manifest in it; discovery
// does not descend below a found root, so nested manifests belong to
// their enclosing project. Symlink cycles are broken by tracking each
// directory's canonical path.
func DiscoverProjects(ctx context.Context, root string, scs []scanners.Scanner) ([]string, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	var roots []string
	visited := make(map[string]struct{})
	walk(ctx, root, scs, visited, &roots)

	sort.Strings(roots)
	return roots, nil
}

func walk(ctx context.Context, dir string, scs []scanners.Scanner, visited map[string]struct{}, roots *[]string) {
	if ctx.Err() != nil {
		return
	}

	canonical, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return
	}
	if _, seen := visited[canonical]; seen {
		return
	}
	visited[canonical] = struct{}{}

	if _, noisy := noiseDirs[filepath.Base(dir)]; noisy {
		return
	}

	for _, s := range scs {
		if s.DetectProject(ctx, dir) {
			*roots = append(*roots, dir)
			return
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			walk(ctx, child, scs, visited, roots)
			continue
		}
		// Follow directory symlinks; the visited set stops cycles.
		if entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(child); err == nil && info.IsDir() {
				walk(ctx, child, scs, visited, roots)
			}
		}
	}
}
