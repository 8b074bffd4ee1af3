// Package npm collects dependencies from Node.js manifests.
package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/scanners"
)

var (
	yarnHeaderRe  = regexp.MustCompile(`^"?(@?[^@"]+)@`)
	yarnVersionRe = regexp.MustCompile(`^\s+version\s+"([^"]+)"`)
)

// NPMScanner parses Node.js manifests in priority order:
// package-lock.json (pinned, often with a license field), yarn.lock, then
// package.json declared ranges. Results are deduplicated by name@version.
type NPMScanner struct {
	scanners.BaseScanner
}

func NewScanner() *NPMScanner {
	return &NPMScanner{
		BaseScanner: scanners.NewBaseScanner(models.EcosystemNode),
	}
}

func (s *NPMScanner) DetectProject(ctx context.Context, dir string) bool {
	for _, name := range []string{"package.json", "package-lock.json", "yarn.lock"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func (s *NPMScanner) CollectDependencies(ctx context.Context, dir string) ([]models.Dependency, error) {
	var deps []models.Dependency
	seen := make(map[string]bool)

	add := func(parsed []models.Dependency) {
		for _, d := range parsed {
			key := fmt.Sprintf("%s@%s", d.Name, d.Version)
			if !seen[key] {
				seen[key] = true
				deps = append(deps, d)
			}
		}
	}

	if parsed, err := parsePackageLockJSON(filepath.Join(dir, "package-lock.json"), dir); err == nil {
		add(parsed)
	}
	if parsed, err := parseYarnLock(filepath.Join(dir, "yarn.lock")); err == nil {
		add(parsed)
	}
	// package.json only as a fallback: it declares ranges, not pins
	if len(deps) == 0 {
		if parsed, err := parsePackageJSON(filepath.Join(dir, "package.json")); err == nil {
			add(parsed)
		}
	}

	return deps, nil
}

func makeDep(name, version, license string) models.Dependency {
	return scanners.NewDependency(models.EcosystemNode, name, version, license)
}

type lockPackage struct {
	Version string `json:"version"`
	License string `json:"license"`
}

// parsePackageLockJSON reads the v2/v3 "packages" map. When the lock entry
// has no license field the installed package's own package.json under
// node_modules is consulted.
func parsePackageLockJSON(lockPath, projectRoot string) ([]models.Dependency, error) {
	content, err := os.ReadFile(lockPath)
	if err != nil {
		return nil, err
	}

	var lock struct {
		Packages map[string]lockPackage `json:"packages"`
	}
	if err := json.Unmarshal(content, &lock); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	paths := make([]string, 0, len(lock.Packages))
	for p := range lock.Packages {
		if p != "" {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var deps []models.Dependency
	for _, pkgPath := range paths {
		info := lock.Packages[pkgPath]
		version := info.Version
		if version == "" {
			version = "*"
		}
		// "node_modules/@scope/foo" -> "@scope/foo"
		name := strings.TrimPrefix(pkgPath, "node_modules/")

		license := info.License
		if license == "" {
			license = licenseFromPackageJSON(filepath.Join(projectRoot, pkgPath, "package.json"))
		}
		deps = append(deps, makeDep(name, version, license))
	}
	return deps, nil
}

func licenseFromPackageJSON(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg struct {
		License string `json:"license"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return ""
	}
	return pkg.License
}

// parseYarnLock reads yarn's line-based format: a non-indented
// "name@range:" header followed by an indented version line.
func parseYarnLock(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []models.Dependency
	lines := strings.Split(string(content), "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}

		header := strings.TrimSuffix(strings.TrimSpace(line), ":")
		header = strings.Trim(header, `"`)
		// Comma-separated specs resolve to the same package; take the first
		firstSpec := strings.SplitN(header, ", ", 2)[0]
		m := yarnHeaderRe.FindStringSubmatch(firstSpec)
		if m == nil {
			continue
		}
		name := m[1]

		for j := i + 1; j < len(lines); j++ {
			next := lines[j]
			if next == "" {
				i = j
				break
			}
			if vm := yarnVersionRe.FindStringSubmatch(next); vm != nil {
				deps = append(deps, makeDep(name, vm[1], ""))
				i = j
				break
			}
		}
	}
	return deps, nil
}

// parsePackageJSON extracts dependencies and devDependencies declared
// ranges, trimming range operators down to the bare version.
func parsePackageJSON(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	var deps []models.Dependency
	for _, section := range []map[string]string{pkg.Dependencies, pkg.DevDependencies} {
		names := make([]string, 0, len(section))
		for name := range section {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			version := strings.TrimLeftFunc(section[name], func(r rune) bool {
				return (r < '0' || r > '9') && r != '*'
			})
			if version == "" {
				version = "*"
			}
			deps = append(deps, makeDep(name, version, ""))
		}
	}
	return deps, nil
}
