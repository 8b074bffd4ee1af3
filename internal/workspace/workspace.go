// Package workspace discovers project roots under a directory tree and
// fans the per-project pipeline out across them.
package workspace

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/policy"
	"github.com/santoshdahal12/licensegate/pkg/scanners"
)

// Options configures a workspace scan.
type Options struct {
	// Recurse discovers nested project roots; when false the root path is
	// scanned as a single project.
	Recurse bool
	// Workers bounds the number of projects scanned concurrently.
	// <= 0 uses the CPU count.
	Workers int
	// ConfigOverride is an explicit policy config path applied to every
	// project, ahead of each project's own config.
	ConfigOverride string
	// Exclude drops ecosystems from scanning.
	Exclude []models.Ecosystem
}

// Scanner runs workspace scans.
type Scanner struct {
	pipeline *Pipeline
	log      *zap.Logger
}

// NewScanner builds a workspace scanner around a configured pipeline.
func NewScanner(pipeline *Pipeline, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{pipeline: pipeline, log: log}
}

// Scan discovers projects under root and runs one pipeline per root on a
// bounded worker pool. Results are merged sorted by project path, so the
// report is identical across runs regardless of completion order. Only a
// missing or non-directory root fails the scan.
func (s *Scanner) Scan(ctx context.Context, root string, opts Options) (*models.WorkspaceReport, error) {
	scs := filterScanners(s.pipeline.scanners, opts.Exclude)
	active := &Pipeline{
		scanners: scs,
		resolver: s.pipeline.resolver,
		online:   s.pipeline.online,
		log:      s.pipeline.log,
	}

	var roots []string
	if opts.Recurse {
		discovered, err := DiscoverProjects(ctx, root, scs)
		if err != nil {
			return nil, err
		}
		roots = discovered
	} else {
		if err := CheckRoot(root); err != nil {
			return nil, err
		}
		roots = []string{root}
	}

	s.log.Info("discovered projects", zap.Int("count", len(roots)), zap.String("root", root))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]models.ProjectScan, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, projectPath := range roots {
		i, projectPath := i, projectPath
		g.Go(func() error {
			loaders := policy.SearchPath(projectPath, opts.ConfigOverride)
			results[i] = active.Run(gctx, projectPath, loaders)
			return nil
		})
	}
	// Pipelines never return errors; Wait is the join barrier.
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	report := &models.WorkspaceReport{
		RunID:       uuid.NewString(),
		Root:        root,
		GeneratedAt: time.Now().UTC(),
		Projects:    results,
	}
	for _, project := range results {
		for _, dep := range project.Dependencies {
			report.Totals.Add(dep.Verdict)
		}
	}
	return report, nil
}

func filterScanners(scs []scanners.Scanner, exclude []models.Ecosystem) []scanners.Scanner {
	if len(exclude) == 0 {
		return scs
	}
	excluded := make(map[models.Ecosystem]struct{}, len(exclude))
	for _, eco := range exclude {
		excluded[eco] = struct{}{}
	}
	kept := make([]scanners.Scanner, 0, len(scs))
	for _, s := range scs {
		if _, skip := excluded[s.Ecosystem()]; !skip {
			kept = append(kept, s)
		}
	}
	return kept
}
