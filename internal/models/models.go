package models

import (
	"fmt"
	"strings"
	"time"
)

// Ecosystem identifies a supported language/package-manager domain.
// The set is closed; dispatch on it exhaustively.
type Ecosystem string

const (
	EcosystemRust   Ecosystem = "rust"
	EcosystemPython Ecosystem = "python"
	EcosystemJava   Ecosystem = "java"
	EcosystemNode   Ecosystem = "node"
	EcosystemDotnet Ecosystem = "dotnet"
)

// AllEcosystems returns every supported ecosystem in a fixed order.
func AllEcosystems() []Ecosystem {
	return []Ecosystem{EcosystemRust, EcosystemPython, EcosystemJava, EcosystemNode, EcosystemDotnet}
}

// ParseEcosystem parses an ecosystem name case-insensitively.
// Accepts "nodejs" as "node" and "csharp" as "dotnet".
func ParseEcosystem(s string) (Ecosystem, error) {
	switch strings.ToLower(s) {
	case "rust":
		return EcosystemRust, nil
	case "python":
		return EcosystemPython, nil
	case "java":
		return EcosystemJava, nil
	case "node", "nodejs":
		return EcosystemNode, nil
	case "dotnet", "csharp":
		return EcosystemDotnet, nil
	default:
		return "", fmt.Errorf("unsupported ecosystem: %s", s)
	}
}

func (e Ecosystem) String() string {
	return string(e)
}

// RiskTier is a coarse legal-risk classification for a license.
type RiskTier string

const (
	RiskPermissive     RiskTier = "permissive"
	RiskWeakCopyleft   RiskTier = "weak-copyleft"
	RiskStrongCopyleft RiskTier = "strong-copyleft"
	RiskProprietary    RiskTier = "proprietary"
	RiskUnknown        RiskTier = "unknown"
)

// Rank orders tiers from least (0) to most restrictive. An unrecognized
// license is treated as the most restrictive case.
func (r RiskTier) Rank() int {
	switch r {
	case RiskPermissive:
		return 0
	case RiskWeakCopyleft:
		return 1
	case RiskStrongCopyleft:
		return 2
	case RiskProprietary:
		return 3
	default:
		return 4
	}
}

func (r RiskTier) String() string {
	switch r {
	case RiskPermissive:
		return "Permissive"
	case RiskWeakCopyleft:
		return "Weak Copyleft"
	case RiskStrongCopyleft:
		return "Strong Copyleft"
	case RiskProprietary:
		return "Proprietary"
	default:
		return "Unknown"
	}
}

// Verdict is the policy outcome for a dependency.
type Verdict string

const (
	VerdictPass  Verdict = "pass"
	VerdictWarn  Verdict = "warn"
	VerdictError Verdict = "error"
)

// Rank orders verdicts Pass (0) < Warn (1) < Error (2).
func (v Verdict) Rank() int {
	switch v {
	case VerdictPass:
		return 0
	case VerdictWarn:
		return 1
	default:
		return 2
	}
}

func (v Verdict) String() string {
	return string(v)
}

// ParseVerdict parses a verdict string case-insensitively.
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(s) {
	case "pass":
		return VerdictPass, nil
	case "warn":
		return VerdictWarn, nil
	case "error":
		return VerdictError, nil
	default:
		return "", fmt.Errorf("invalid verdict: %s", s)
	}
}

// LicenseSource records which data origin supplied a license string.
type LicenseSource string

const (
	SourceManifest LicenseSource = "manifest"
	SourceCache    LicenseSource = "cache"
	SourceRegistry LicenseSource = "registry"
	SourceUnknown  LicenseSource = "unknown"
)

// Dependency is one third-party package discovered in a project, carrying
// its resolved license and the policy outcome. Built once per package by
// the pipeline and not mutated afterwards.
type Dependency struct {
	Name             string        `json:"name"`
	Version          string        `json:"version"`
	Ecosystem        Ecosystem     `json:"ecosystem"`
	LicenseRaw       string        `json:"license_raw,omitempty"`
	LicenseCanonical string        `json:"license_canonical"`
	Source           LicenseSource `json:"source"`
	Risk             RiskTier      `json:"risk"`
	Verdict          Verdict       `json:"verdict"`
}

// ProjectScan holds the completed results for one discovered project root.
type ProjectScan struct {
	Name         string       `json:"name"`
	Path         string       `json:"path"`
	Dependencies []Dependency `json:"dependencies"`
}

// Totals counts dependencies per verdict.
type Totals struct {
	Pass  int `json:"pass"`
	Warn  int `json:"warn"`
	Error int `json:"error"`
}

// Add increments the counter matching v.
func (t *Totals) Add(v Verdict) {
	switch v {
	case VerdictPass:
		t.Pass++
	case VerdictWarn:
		t.Warn++
	case VerdictError:
		t.Error++
	}
}

// Sum returns the total number of counted dependencies.
func (t Totals) Sum() int {
	return t.Pass + t.Warn + t.Error
}

// WorkspaceReport is the aggregated result for a whole scan, with projects
// ordered by path. Totals always equals the per-dependency verdict counts
// summed over all projects.
type WorkspaceReport struct {
	RunID       string        `json:"run_id"`
	Root        string        `json:"root"`
	GeneratedAt time.Time     `json:"generated_at"`
	Projects    []ProjectScan `json:"projects"`
	Totals      Totals        `json:"totals"`
}

// HasErrors reports whether any dependency in any project carries an
// error verdict. Drives the process exit code.
func (r *WorkspaceReport) HasErrors() bool {
	return r.Totals.Error > 0
}
