package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverFindsProjects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "svc", "package.json"), `{}`)
	writeFile(t, filepath.Join(root, "tool", "Cargo.toml"), "[package]\nname = \"tool\"\n")

	roots, err := DiscoverProjects(context.Background(), root, DefaultScanners())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "svc"),
		filepath.Join(root, "tool"),
	}, roots)
}

func TestDiscoverSkipsNoiseDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", "package.json"), `{}`)
	// Manifests inside noise directories must never surface as projects.
	writeFile(t, filepath.Join(root, "node_modules", "left-pad", "package.json"), `{}`)
	writeFile(t, filepath.Join(root, "target", "debug", "Cargo.toml"), "")
	writeFile(t, filepath.Join(root, ".git", "package.json"), `{}`)

	roots, err := DiscoverProjects(context.Background(), root, DefaultScanners())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app")}, roots)
}

func TestDiscoverStopsBelowProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", "package.json"), `{}`)
	// Nested manifest belongs to the enclosing project.
	writeFile(t, filepath.Join(root, "app", "examples", "package.json"), `{}`)
	// A sibling of the project root is still its own project.
	writeFile(t, filepath.Join(root, "lib", "Cargo.toml"), "")

	roots, err := DiscoverProjects(context.Background(), root, DefaultScanners())
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "app"),
		filepath.Join(root, "lib"),
	}, roots)
}

func TestDiscoverTerminatesOnSymlinkCycle(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "nested", "app", "package.json"), `{}`)
	// Loop back to the root from deep inside the tree.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "nested", "loop")))

	roots, err := DiscoverProjects(context.Background(), root, DefaultScanners())
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "nested", "app")}, roots)
}

func TestDiscoverRootMustBeDirectory(t *testing.T) {
	_, err := DiscoverProjects(context.Background(), filepath.Join(t.TempDir(), "absent"), DefaultScanners())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain.txt")
	writeFile(t, file, "not a directory")
	_, err = DiscoverProjects(context.Background(), file, DefaultScanners())
	assert.Error(t, err)
}
