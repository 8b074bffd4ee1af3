// Package scanners defines the per-ecosystem manifest collectors.
package scanners

import (
	"context"
	"errors"

	"github.com/santoshdahal12/licensegate/internal/models"
)

// Common errors
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Scanner is the interface every ecosystem collector implements. A scanner
// parses the manifest files it recognizes under a directory and returns the
// dependencies they declare, with whatever license string the manifest
// itself embeds. Unparseable files are skipped; a scanner only fails when
// it cannot produce any result at all.
//
// License resolution, classification and policy evaluation happen in the
// pipeline, not inside the scanner.
type Scanner interface {
	DetectProject(ctx context.Context, dir string) bool
	CollectDependencies(ctx context.Context, dir string) ([]models.Dependency, error)
	Ecosystem() models.Ecosystem
}

// BaseScanner provides common functionality for scanners.
type BaseScanner struct {
	ecosystem models.Ecosystem
}

// NewBaseScanner creates a new base scanner for the given ecosystem.
func NewBaseScanner(eco models.Ecosystem) BaseScanner {
	return BaseScanner{ecosystem: eco}
}

// Ecosystem returns the scanner's ecosystem.
func (s BaseScanner) Ecosystem() models.Ecosystem {
	return s.ecosystem
}

// NewDependency builds a dependency record in its pre-resolution state.
func NewDependency(eco models.Ecosystem, name, version, embeddedLicense string) models.Dependency {
	return models.Dependency{
		Name:       name,
		Version:    version,
		Ecosystem:  eco,
		LicenseRaw: embeddedLicense,
		Source:     models.SourceUnknown,
		Risk:       models.RiskUnknown,
		Verdict:    models.VerdictWarn,
	}
}
