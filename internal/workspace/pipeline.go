package workspace

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/internal/resolver"
	"github.com/santoshdahal12/licensegate/pkg/license"
	"github.com/santoshdahal12/licensegate/pkg/policy"
	"github.com/santoshdahal12/licensegate/pkg/scanners"
	"github.com/santoshdahal12/licensegate/pkg/scanners/dotnet"
	"github.com/santoshdahal12/licensegate/pkg/scanners/java"
	"github.com/santoshdahal12/licensegate/pkg/scanners/npm"
	"github.com/santoshdahal12/licensegate/pkg/scanners/python"
	"github.com/santoshdahal12/licensegate/pkg/scanners/rustlang"
	"github.com/santoshdahal12/licensegate/pkg/spdx"
)

// DefaultScanners returns one collector per supported ecosystem, in the
// fixed ecosystem order.
func DefaultScanners() []scanners.Scanner {
	return []scanners.Scanner{
		rustlang.NewScanner(),
		python.NewScanner(),
		java.NewScanner(),
		npm.NewScanner(),
		dotnet.NewScanner(),
	}
}

// Pipeline runs the per-project flow: collect dependencies from every
// detected ecosystem, resolve licenses, parse and classify expressions,
// and apply the project's policy.
type Pipeline struct {
	scanners []scanners.Scanner
	resolver *resolver.Resolver
	online   bool
	log      *zap.Logger
}

// NewPipeline wires a pipeline. res handles both local resolution and,
// when online is set, registry enrichment.
func NewPipeline(scs []scanners.Scanner, res *resolver.Resolver, online bool, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{scanners: scs, resolver: res, online: online, log: log}
}

// Run scans one project root. Failures inside one ecosystem or one
// dependency degrade locally; Run itself only reflects the project's
// final state and never returns an error for bad dependency data.
func (p *Pipeline) Run(ctx context.Context, projectPath string, cfgLoaders []policy.Loader) models.ProjectScan {
	cfg, cfgErrs := policy.Resolve(cfgLoaders)
	for _, err := range cfgErrs {
		p.log.Warn("policy config skipped", zap.String("project", projectPath), zap.Error(err))
	}

	var deps []models.Dependency
	for _, s := range p.scanners {
		if !s.DetectProject(ctx, projectPath) {
			continue
		}
		collected, err := s.CollectDependencies(ctx, projectPath)
		if err != nil {
			// One ecosystem's manifests being unreadable does not fail
			// the project; the remaining ecosystems still count.
			p.log.Warn("manifest collection failed",
				zap.String("project", projectPath),
				zap.String("ecosystem", s.Ecosystem().String()),
				zap.Error(err))
			continue
		}
		p.log.Debug("collected dependencies",
			zap.String("project", projectPath),
			zap.String("ecosystem", s.Ecosystem().String()),
			zap.Int("count", len(collected)))
		deps = append(deps, collected...)
	}

	for i := range deps {
		p.resolver.ResolveLocal(&deps[i])
	}
	if p.online {
		deps = p.resolver.EnrichOnline(ctx, deps)
	}

	for i := range deps {
		evaluate(&deps[i], cfg)
	}

	return models.ProjectScan{
		Name:         filepath.Base(projectPath),
		Path:         projectPath,
		Dependencies: deps,
	}
}

// evaluate finalizes one dependency: parse the raw license into an
// expression tree, render the canonical form, classify risk, and apply
// the policy.
func evaluate(dep *models.Dependency, cfg *policy.Config) {
	raw := dep.LicenseRaw
	expr := spdx.Parse(raw)
	dep.LicenseCanonical = expr.Canonical()
	dep.Risk = license.Classify(expr, raw)
	dep.Verdict = policy.Evaluate(expr, cfg)
}
