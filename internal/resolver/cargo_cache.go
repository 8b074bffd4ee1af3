package resolver

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type crateManifest struct {
	Package struct {
		License string `toml:"license"`
	} `toml:"package"`
}

// cargoCacheLicense looks up a crate's license field in the local cargo
// registry cache, which stores downloaded sources at
// $CARGO_HOME/registry/src/<registry-host>/<name>-<version>/Cargo.toml.
// Returns "" when the crate is not cached or has no license field.
func cargoCacheLicense(name, version string) string {
	cargoHome := os.Getenv("CARGO_HOME")
	if cargoHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cargoHome = filepath.Join(home, ".cargo")
	}

	registrySrc := filepath.Join(cargoHome, "registry", "src")
	entries, err := os.ReadDir(registrySrc)
	if err != nil {
		return ""
	}

	crateDir := name + "-" + version
	for _, entry := range entries {
		manifestPath := filepath.Join(registrySrc, entry.Name(), crateDir, "Cargo.toml")
		content, err := os.ReadFile(manifestPath)
		if err != nil {
			continue
		}
		var manifest crateManifest
		if err := toml.Unmarshal(content, &manifest); err != nil {
			continue
		}
		if manifest.Package.License != "" {
			return manifest.Package.License
		}
	}
	return ""
}
