// Package java collects dependencies from Maven and Gradle build files.
package java

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

var (
	// implementation 'group:artifact:version' (single or double quotes)
	gradleShorthandRe = regexp.MustCompile(`(?:implementation|api|compileOnly|runtimeOnly|testImplementation)\s+['"]([^'":]+):([^'":]+):([^'"]+)['"]`)
	// group: 'g', name: 'n', version: 'v'
	gradleMapRe = regexp.MustCompile(`(?:implementation|api|compileOnly|runtimeOnly|testImplementation)\s+group:\s*['"]([^'"]+)['"]\s*,\s*name:\s*['"]([^'"]+)['"]\s*,\s*version:\s*['"]([^'"]+)['"]`)
	// gradle.lockfile: group:artifact:version=configurations
	gradleLockRe = regexp.MustCompile(`^([^:]+):([^:]+):([^=\s]+)`)
)

// JavaScanner parses pom.xml, build.gradle / build.gradle.kts and
// gradle.lockfile. Dependencies are keyed "group:artifact" and
// deduplicated by coordinate and version.
type JavaScanner struct {
	scanners.BaseScanner
}

func NewScanner() *JavaScanner {
	return &JavaScanner{
		BaseScanner: scanners.NewBaseScanner(models.EcosystemJava),
	}
}

func (s *JavaScanner) DetectProject(ctx context.Context, dir string) bool {
	for _, name := range []string{"pom.xml", "build.gradle", "build.gradle.kts"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func (s *JavaScanner) CollectDependencies(ctx context.Context, dir string) ([]models.Dependency, error) {
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

	if parsed, err := parsePomXML(filepath.Join(dir, "pom.xml")); err == nil {
		add(parsed)
	}
	for _, name := range []string{"build.gradle", "build.gradle.kts"} {
		if parsed, err := parseBuildGradle(filepath.Join(dir, name)); err == nil {
			add(parsed)
		}
	}
	if parsed, err := parseGradleLockfile(filepath.Join(dir, "gradle.lockfile")); err == nil {
		add(parsed)
	}

	return deps, nil
}

func makeDep(groupID, artifactID, version string) models.Dependency {
	// Keep Maven coordinates in the name
	name := artifactID
	if groupID != "" {
		name = groupID + ":" + artifactID
	}
	return scanners.NewDependency(models.EcosystemJava, name, version, "")
}

type pomProject struct {
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// parsePomXML reads the top-level <dependencies> block of a POM.
func parsePomXML(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj pomProject
	if err := xml.Unmarshal(content, &proj); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	var deps []models.Dependency
	for _, d := range proj.Dependencies {
		if d.ArtifactID == "" {
			continue
		}
		deps = append(deps, makeDep(strings.TrimSpace(d.GroupID), strings.TrimSpace(d.ArtifactID), strings.TrimSpace(d.Version)))
	}
	return deps, nil
}

// parseBuildGradle extracts shorthand and map-style dependency
// declarations with regular expressions. Version catalogs and project()
// references are out of reach for a static parse and are skipped.
func parseBuildGradle(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []models.Dependency
	for _, m := range gradleShorthandRe.FindAllStringSubmatch(string(content), -1) {
		deps = append(deps, makeDep(m[1], m[2], m[3]))
	}
	for _, m := range gradleMapRe.FindAllStringSubmatch(string(content), -1) {
		deps = append(deps, makeDep(m[1], m[2], m[3]))
	}
	return deps, nil
}

// parseGradleLockfile reads "group:artifact:version=configurations" lines.
func parseGradleLockfile(path string) ([]models.Dependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []models.Dependency
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := gradleLockRe.FindStringSubmatch(line); m != nil {
			deps = append(deps, makeDep(m[1], m[2], m[3]))
		}
	}
	return deps, nil
}
