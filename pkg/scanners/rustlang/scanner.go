// Package rustlang collects dependencies from Cargo lockfiles.
package rustlang

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/scanners"
)

type cargoLock struct {
	Package []cargoLockPackage `toml:"package"`
}

type cargoLockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	// Local workspace members have no source field.
	Source string `toml:"source"`
}

// RustScanner parses Cargo.lock and returns all external crate
// dependencies, filtering out local workspace members.
type RustScanner struct {
	scanners.BaseScanner
}

func NewScanner() *RustScanner {
	return &RustScanner{
		BaseScanner: scanners.NewBaseScanner(models.EcosystemRust),
	}
}

func (s *RustScanner) DetectProject(ctx context.Context, dir string) bool {
	for _, name := range []string{"Cargo.toml", "Cargo.lock"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func (s *RustScanner) CollectDependencies(ctx context.Context, dir string) ([]models.Dependency, error) {
	lockPath := filepath.Join(dir, "Cargo.lock")
	content, err := os.ReadFile(lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var lock cargoLock
	if err := toml.Unmarshal(content, &lock); err != nil {
		return nil, scanners.ErrInvalidManifest
	}

	var deps []models.Dependency
	for _, pkg := range lock.Package {
		if pkg.Source == "" {
			continue
		}
		deps = append(deps, scanners.NewDependency(models.EcosystemRust, pkg.Name, pkg.Version, ""))
	}
	return deps, nil
}
