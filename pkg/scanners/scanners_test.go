package scanners

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/santoshdahal12/licensegate/internal/models"
)

func TestBaseScannerEcosystem(t *testing.T) {
	base := NewBaseScanner(models.EcosystemRust)
	assert.Equal(t, models.EcosystemRust, base.Ecosystem())
}

func TestNewDependencyDefaults(t *testing.T) {
	dep := NewDependency(models.EcosystemNode, "express", "4.18.2", "MIT")

	assert.Equal(t, "express", dep.Name)
	assert.Equal(t, "4.18.2", dep.Version)
	assert.Equal(t, models.EcosystemNode, dep.Ecosystem)
	assert.Equal(t, "MIT", dep.LicenseRaw)

	// Pre-resolution state: no source, unknown risk, warn verdict
	assert.Equal(t, models.SourceUnknown, dep.Source)
	assert.Equal(t, models.RiskUnknown, dep.Risk)
	assert.Equal(t, models.VerdictWarn, dep.Verdict)
	assert.Empty(t, dep.LicenseCanonical)
}
