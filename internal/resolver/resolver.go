// Package resolver merges license information from multiple sources under
// a fixed priority: manifest-embedded license, local package cache, then
// (when online enrichment is enabled) the ecosystem's registry.
package resolver

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/registry"
)

// DefaultBatchSize bounds the number of in-flight registry lookups per
// batch. Kept tunable: the right value depends on registry rate limits
// and how many projects are enriching at once.
const DefaultBatchSize = 50

// Resolver resolves license strings for a project's dependencies.
type Resolver struct {
	client    *registry.Client
	batchSize int
	log       *zap.Logger
}

// New builds a resolver. client may be nil when online enrichment is
// disabled. batchSize <= 0 falls back to DefaultBatchSize.
func New(client *registry.Client, batchSize int, log *zap.Logger) *Resolver {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{client: client, batchSize: batchSize, log: log}
}

// ResolveLocal applies the offline resolution steps to one dependency:
// a license embedded in the manifest wins, then the local package cache.
// Neither step can fail the pipeline; a miss leaves the source unknown for
// the registry pass (or final unknown fallback) to handle.
func (r *Resolver) ResolveLocal(dep *models.Dependency) {
	if dep.LicenseRaw != "" {
		dep.Source = models.SourceManifest
		return
	}

	// Cache inspection is ecosystem-specific; only the Rust cargo registry
	// cache is implemented today.
	switch dep.Ecosystem {
	case models.EcosystemRust:
		if license := cargoCacheLicense(dep.Name, dep.Version); license != "" {
			dep.LicenseRaw = license
			dep.Source = models.SourceCache
			return
		}
	case models.EcosystemPython, models.EcosystemJava, models.EcosystemNode, models.EcosystemDotnet:
	}

	dep.Source = models.SourceUnknown
}

// EnrichOnline fills unresolved dependencies from package registries, in
// bounded batches: the whole batch completes before the next one starts,
// which gives basic backpressure against registry rate limits. A failed
// lookup leaves its dependency untouched; only ctx cancellation ends the
// pass early.
func (r *Resolver) EnrichOnline(ctx context.Context, deps []models.Dependency) []models.Dependency {
	if r.client == nil {
		return deps
	}

	var pending []int
	for i, dep := range deps {
		if dep.LicenseRaw == "" {
			pending = append(pending, i)
		}
	}

	for start := 0; start < len(pending); start += r.batchSize {
		end := start + r.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		g, gctx := errgroup.WithContext(ctx)
		for _, idx := range batch {
			idx := idx
			g.Go(func() error {
				dep := &deps[idx]
				license, err := r.client.FetchLicense(gctx, dep.Ecosystem, dep.Name, dep.Version)
				if err != nil {
					// Treated as not-found; the dependency degrades to
					// unknown instead of failing the project.
					r.log.Debug("registry lookup failed",
						zap.String("package", dep.Name),
						zap.String("ecosystem", dep.Ecosystem.String()),
						zap.Error(err))
					return nil
				}
				if license != "" {
					dep.LicenseRaw = license
					dep.Source = models.SourceRegistry
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}

	return deps
}
