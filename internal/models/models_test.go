package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRiskTierRank(t *testing.T) {
	assert.Less(t, RiskPermissive.Rank(), RiskWeakCopyleft.Rank())
	assert.Less(t, RiskWeakCopyleft.Rank(), RiskStrongCopyleft.Rank())
	assert.Less(t, RiskStrongCopyleft.Rank(), RiskProprietary.Rank())
	assert.Less(t, RiskProprietary.Rank(), RiskUnknown.Rank())

	// Anything off the enum ranks like Unknown
	assert.Equal(t, RiskUnknown.Rank(), RiskTier("bogus").Rank())
}

func TestVerdictRank(t *testing.T) {
	assert.Less(t, VerdictPass.Rank(), VerdictWarn.Rank())
	assert.Less(t, VerdictWarn.Rank(), VerdictError.Rank())
}

func TestParseVerdict(t *testing.T) {
	v, err := ParseVerdict("PASS")
	assert.NoError(t, err)
	assert.Equal(t, VerdictPass, v)

	_, err = ParseVerdict("fatal")
	assert.Error(t, err)
}

func TestParseEcosystem(t *testing.T) {
	e, err := ParseEcosystem("NodeJS")
	assert.NoError(t, err)
	assert.Equal(t, EcosystemNode, e)

	e, err = ParseEcosystem("dotnet")
	assert.NoError(t, err)
	assert.Equal(t, EcosystemDotnet, e)

	_, err = ParseEcosystem("cobol")
	assert.Error(t, err)
}

func TestTotalsAdd(t *testing.T) {
	var totals Totals
	totals.Add(VerdictPass)
	totals.Add(VerdictWarn)
	totals.Add(VerdictError)
	totals.Add(VerdictError)

	assert.Equal(t, 1, totals.Pass)
	assert.Equal(t, 1, totals.Warn)
	assert.Equal(t, 2, totals.Error)
	assert.Equal(t, 4, totals.Sum())
}

func TestWorkspaceReportMarshaling(t *testing.T) {
	report := &WorkspaceReport{
		RunID:       "run-1",
		Root:        "/workspace",
		GeneratedAt: time.Now(),
		Projects: []ProjectScan{
			{
				Name: "app",
				Path: "/workspace/app",
				Dependencies: []Dependency{
					{
						Name:             "serde",
						Version:          "1.0.150",
						Ecosystem:        EcosystemRust,
						LicenseRaw:       "MIT OR Apache-2.0",
						LicenseCanonical: "MIT OR Apache-2.0",
						Source:           SourceManifest,
						Risk:             RiskPermissive,
						Verdict:          VerdictPass,
					},
				},
			},
		},
		Totals: Totals{Pass: 1},
	}

	data, err := json.Marshal(report)
	assert.NoError(t, err)

	var decoded WorkspaceReport
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, report.Root, decoded.Root)
	assert.Equal(t, report.Projects[0].Dependencies[0].Name, decoded.Projects[0].Dependencies[0].Name)
	assert.False(t, decoded.HasErrors())
}
