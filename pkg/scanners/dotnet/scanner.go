// Package dotnet collects dependencies from NuGet and Paket manifests.
package dotnet

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/scanners"
)

// paket.lock NUGET entries:     PackageName (1.2.3)
var paketEntryRe = regexp.MustCompile(`^\s{4}(\S+)\s+\(([^)]+)\)`)

// DotNetScanner parses SDK-style *.csproj / *.fsproj PackageReference
// elements, legacy packages.config, and paket.lock NUGET sections. All
// project files directly under the project root are scanned.
type DotNetScanner struct {
	scanners.BaseScanner
}

func NewScanner() *DotNetScanner {
	return &DotNetScanner{
		BaseScanner: scanners.NewBaseScanner(models.EcosystemDotnet),
	}
}

func (s *DotNetScanner) DetectProject(ctx context.Context, dir string) bool {
	for _, name := range []string{"packages.config", "paket.dependencies", "paket.lock"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return len(projectFiles(dir)) > 0
}

func (s *DotNetScanner) CollectDependencies(ctx context.Context, dir string) ([]models.Dependency, error) {
	var deps []models.Dependency
	seen := make(map[string]bool)

	add := func(parsed []models.Dependency) {
		for _, d := range parsed {
			key := fmt.Sprintf("%s:%s", d.Name, d.Version)
			if !seen[key] {
				seen[key] = true
				deps = append(deps, d)
			}
		}
	}

	for _, proj := range projectFiles(dir) {
		if parsed, err := parseProjectFile(proj); err == nil {
			add(parsed)
		}
	}
	if parsed, err := parsePackagesConfig(filepath.Join(dir, "packages.config")); err == nil {
		add(parsed)
	}
	if parsed, err := parsePaketLock(filepath.Join(dir, "paket.lock")); err == nil {
		add(parsed)
	}

	return deps, nil
}

// projectFiles lists *.csproj and *.fsproj directly under dir, sorted.
func projectFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".csproj" || ext == ".fsproj" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files
}

func makeDep(name, version string) models.Dependency {
	return scanners.NewDependency(models.EcosystemDotnet, name, version, "")
}

type sdkProject struct {
	ItemGroups []struct {
		PackageReferences []struct {
			Include string `xml:"Include,attr"`
			Version string `xml:"Version,attr"`
		} `xml:"PackageReference"`
	} `xml:"ItemGroup"`
}

// parseProjectFile reads <PackageReference Include Version> elements.
func parseProjectFile(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj sdkProject
	if err := xml.Unmarshal(content, &proj); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	var deps []models.Dependency
	for _, group := range proj.ItemGroups {
		for _, ref := range group.PackageReferences {
			if ref.Include == "" {
				continue
			}
			deps = append(deps, makeDep(ref.Include, ref.Version))
		}
	}
	return deps, nil
}

type packagesConfig struct {
	Packages []struct {
		ID      string `xml:"id,attr"`
		Version string `xml:"version,attr"`
	} `xml:"package"`
}

// parsePackagesConfig reads legacy <package id version> elements.
func parsePackagesConfig(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg packagesConfig
	if err := xml.Unmarshal(content, &cfg); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	var deps []models.Dependency
	for _, pkg := range cfg.Packages {
		if pkg.ID == "" {
			continue
		}
		deps = append(deps, makeDep(pkg.ID, pkg.Version))
	}
	return deps, nil
}

// parsePaketLock reads entries under the NUGET section; a new top-level
// section (no leading spaces) ends it.
func parsePaketLock(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []models.Dependency
	inNuget := false
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimRight(line, " \r") == "NUGET" {
			inNuget = true
			continue
		}
		if line != "" && !strings.HasPrefix(line, " ") {
			inNuget = false
		}
		if inNuget {
			if m := paketEntryRe.FindStringSubmatch(line); m != nil {
				deps = append(deps, makeDep(m[1], m[2]))
			}
		}
	}
	return deps, nil
}
