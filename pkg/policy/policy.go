// Package policy decides pass/warn/error verdicts for license expressions
// from a configurable rule table.
package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/spdx"
)

// Config is a read-only policy: a per-identifier rule table and the verdict
// for identifiers the table does not name.
type Config struct {
	Default models.Verdict
	Rules   map[string]models.Verdict
}

// Default returns the built-in policy: common permissive licenses pass,
// LGPL-2.1 and anything unidentified warn, GPL/AGPL error.
func Default() *Config {
	return &Config{
		Default: models.VerdictWarn,
		Rules: map[string]models.Verdict{
			"MIT":          models.VerdictPass,
			"Apache-2.0":   models.VerdictPass,
			"BSD-2-Clause": models.VerdictPass,
			"BSD-3-Clause": models.VerdictPass,
			"ISC":          models.VerdictPass,
			"LGPL-2.1":     models.VerdictWarn,
			"GPL-2.0":      models.VerdictError,
			"GPL-3.0":      models.VerdictError,
			"AGPL-3.0":     models.VerdictError,
			"unknown":      models.VerdictWarn,
		},
	}
}

// Evaluate folds the rule table over a parsed expression: each leaf looks
// up its verdict (falling back to the default), OR keeps the better branch
// and AND the worse one.
func Evaluate(expr spdx.Expr, cfg *Config) models.Verdict {
	return spdx.Fold(expr, func(id string) models.Verdict {
		if v, ok := cfg.Rules[id]; ok {
			return v
		}
		return cfg.Default
	}, models.Verdict.Rank)
}

// tomlConfig mirrors the on-disk shape:
//
//	[policy]
//	default = "warn"
//	[policy.licenses]
//	"GPL-3.0" = "error"
type tomlConfig struct {
	Policy tomlPolicy `toml:"policy"`
}

type tomlPolicy struct {
	Default  string            `toml:"default"`
	Licenses map[string]string `toml:"licenses"`
}

// LoadFile parses a policy config from a TOML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw tomlConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := &Config{
		Default: models.VerdictWarn,
		Rules:   make(map[string]models.Verdict, len(raw.Policy.Licenses)),
	}
	if raw.Policy.Default != "" {
		v, err := models.ParseVerdict(raw.Policy.Default)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Default = v
	}
	for id, action := range raw.Policy.Licenses {
		v, err := models.ParseVerdict(action)
		if err != nil {
			return nil, fmt.Errorf("parse %s: license %q: %w", path, id, err)
		}
		cfg.Rules[id] = v
	}
	return cfg, nil
}

// Loader is one candidate source for a policy config. It returns nil (and
// no error) when its source does not exist.
type Loader func() (*Config, error)

// FileLoader loads from path when the file exists.
func FileLoader(path string) Loader {
	return func() (*Config, error) {
		if _, err := os.Stat(path); err != nil {
			return nil, nil
		}
		return LoadFile(path)
	}
}

// SearchPath builds the ordered candidate list for a project: an explicit
// override first, then the project-local licensegate.toml, then the global
// config under the user's home directory.
func SearchPath(projectPath, override string) []Loader {
	var loaders []Loader
	if override != "" {
		loaders = append(loaders, FileLoader(override))
	}
	loaders = append(loaders, FileLoader(filepath.Join(projectPath, "licensegate.toml")))
	if home, err := os.UserHomeDir(); err == nil {
		loaders = append(loaders, FileLoader(filepath.Join(home, ".config", "licensegate", "config.toml")))
	}
	return loaders
}

// Resolve walks the candidate list and returns the first config that loads
// cleanly, falling back to the built-in default. A candidate that exists
// but fails to parse is skipped; its error is reported to the caller so it
// can be logged without failing the project.
func Resolve(loaders []Loader) (*Config, []error) {
	var errs []error
	for _, load := range loaders {
		cfg, err := load()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if cfg != nil {
			return cfg, errs
		}
	}
	return Default(), errs
}
