package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santoshdahal12/licensegate/internal/models"
)

func sampleReport() *models.WorkspaceReport {
	return &models.WorkspaceReport{
		RunID:       "run-1",
		Root:        "/work",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Projects: []models.ProjectScan{
			{
				Name: "app",
				Path: "/work/app",
				Dependencies: []models.Dependency{
					{Name: "alpha", Version: "1.0.0", Ecosystem: models.EcosystemNode,
						LicenseCanonical: "MIT", Risk: models.RiskPermissive, Verdict: models.VerdictPass},
					{Name: "beta", Version: "2.0.0", Ecosystem: models.EcosystemNode,
						LicenseCanonical: "GPL-3.0", Risk: models.RiskStrongCopyleft, Verdict: models.VerdictError},
					{Name: "gamma", Version: "3.0.0", Ecosystem: models.EcosystemNode,
						LicenseCanonical: "unknown", Risk: models.RiskUnknown, Verdict: models.VerdictWarn},
				},
			},
		},
		Totals: models.Totals{Pass: 1, Warn: 1, Error: 1},
	}
}

func TestWriteTerminalTabulatesProblems(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	WriteTerminal(&buf, sampleReport(), Options{})

	out := buf.String()
	assert.Contains(t, out, "app (/work/app)")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "gamma")
	// Passing dependencies stay out of the table without -verbose.
	assert.NotContains(t, out, "alpha")
	assert.Contains(t, out, "1 projects, 3 dependencies: 1 pass, 1 warn, 1 error")
}

func TestWriteTerminalVerboseIncludesPasses(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	WriteTerminal(&buf, sampleReport(), Options{Verbose: true})

	assert.Contains(t, buf.String(), "alpha")
}

func TestWriteTerminalQuietIsSummaryOnly(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	WriteTerminal(&buf, sampleReport(), Options{Quiet: true})

	out := strings.TrimSpace(buf.String())
	assert.Equal(t, "1 projects, 3 dependencies: 1 pass, 1 warn, 1 error", out)
}

func TestWriteTerminalAllPassing(t *testing.T) {
	color.NoColor = true
	r := sampleReport()
	for i := range r.Projects[0].Dependencies {
		r.Projects[0].Dependencies[i].Verdict = models.VerdictPass
	}
	r.Totals = models.Totals{Pass: 3}

	var buf bytes.Buffer
	WriteTerminal(&buf, r, Options{})
	assert.Contains(t, buf.String(), "all 3 dependencies pass")
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleReport(), true))

	var decoded models.WorkspaceReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Projects, 1)
	assert.Len(t, decoded.Projects[0].Dependencies, 3)
	assert.Equal(t, models.Totals{Pass: 1, Warn: 1, Error: 1}, decoded.Totals)
}
