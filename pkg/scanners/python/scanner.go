// Package python collects dependencies from Python manifests.
package python

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/scanners"
)

var (
	requirementRe = regexp.MustCompile(`^([A-Za-z0-9_\-\.]+)\s*==\s*([^\s;]+)`)
	pyprojectRe   = regexp.MustCompile(`^([A-Za-z0-9_\-\.]+)\s*(?:==\s*([^\s;,\[]+))?`)
)

// PythonScanner searches manifests in priority order: Pipfile.lock (pinned)
// then requirements.txt then pyproject.toml. Results are deduplicated by
// package name, case-insensitively.
type PythonScanner struct {
	scanners.BaseScanner
}

func NewScanner() *PythonScanner {
	return &PythonScanner{
		BaseScanner: scanners.NewBaseScanner(models.EcosystemPython),
	}
}

func (s *PythonScanner) DetectProject(ctx context.Context, dir string) bool {
	for _, name := range []string{"requirements.txt", "pyproject.toml", "Pipfile.lock"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func (s *PythonScanner) CollectDependencies(ctx context.Context, dir string) ([]models.Dependency, error) {
	var deps []models.Dependency
	seen := make(map[string]bool)

	add := func(parsed []models.Dependency) {
		for _, d := range parsed {
			key := strings.ToLower(d.Name)
			if !seen[key] {
				seen[key] = true
				deps = append(deps, d)
			}
		}
	}

	if parsed, err := parsePipfileLock(filepath.Join(dir, "Pipfile.lock")); err == nil {
		add(parsed)
	}
	if parsed, err := parseRequirementsTxt(filepath.Join(dir, "requirements.txt")); err == nil {
		add(parsed)
	}
	if parsed, err := parsePyprojectToml(filepath.Join(dir, "pyproject.toml")); err == nil {
		add(parsed)
	}

	return deps, nil
}

func makeDep(name, version string) models.Dependency {
	return scanners.NewDependency(models.EcosystemPython, name, version, "")
}

// parseRequirementsTxt handles pinned "name==version" lines; range
// specifiers and option lines are skipped.
func parseRequirementsTxt(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []models.Dependency
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if m := requirementRe.FindStringSubmatch(line); m != nil {
			deps = append(deps, makeDep(m[1], m[2]))
		}
	}
	return deps, nil
}

// parsePipfileLock reads the JSON "default" and "develop" sections.
func parsePipfileLock(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lock map[string]json.RawMessage
	if err := json.Unmarshal(content, &lock); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	var deps []models.Dependency
	for _, section := range []string{"default", "develop"} {
		raw, ok := lock[section]
		if !ok {
			continue
		}
		var pkgs map[string]struct {
			Version string `json:"version"`
		}
		if err := json.Unmarshal(raw, &pkgs); err != nil {
			continue
		}
		names := make([]string, 0, len(pkgs))
		for name := range pkgs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			version := strings.TrimPrefix(pkgs[name].Version, "==")
			if version == "" {
				version = "*"
			}
			deps = append(deps, makeDep(name, version))
		}
	}
	return deps, nil
}

type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// parsePyprojectToml extracts [project].dependencies.
func parsePyprojectToml(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj pyproject
	if err := toml.Unmarshal(content, &proj); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	var deps []models.Dependency
	for _, spec := range proj.Project.Dependencies {
		if m := pyprojectRe.FindStringSubmatch(spec); m != nil && m[1] != "" {
			version := m[2]
			if version == "" {
				version = "*"
			}
			deps = append(deps, makeDep(m[1], version))
		}
	}
	return deps, nil
}
