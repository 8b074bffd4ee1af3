package license

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/spdx"
)

func classifyRaw(raw string) models.RiskTier {
	return Classify(spdx.Parse(raw), raw)
}

func TestClassifyIDPermissive(t *testing.T) {
	assert.Equal(t, models.RiskPermissive, ClassifyID("MIT"))
	assert.Equal(t, models.RiskPermissive, ClassifyID("Apache-2.0"))
	assert.Equal(t, models.RiskPermissive, ClassifyID("BSD-3-Clause"))
	assert.Equal(t, models.RiskPermissive, ClassifyID("BSL-1.0"))
}

func TestClassifyIDWeakCopyleft(t *testing.T) {
	assert.Equal(t, models.RiskWeakCopyleft, ClassifyID("LGPL-2.1"))
	assert.Equal(t, models.RiskWeakCopyleft, ClassifyID("MPL-2.0"))
	assert.Equal(t, models.RiskWeakCopyleft, ClassifyID("EPL-2.0"))
}

func TestClassifyIDStrongCopyleft(t *testing.T) {
	assert.Equal(t, models.RiskStrongCopyleft, ClassifyID("GPL-3.0"))
	assert.Equal(t, models.RiskStrongCopyleft, ClassifyID("AGPL-3.0"))
	assert.Equal(t, models.RiskStrongCopyleft, ClassifyID("GPL-2.0-or-later"))
}

func TestClassifyIDUnknown(t *testing.T) {
	assert.Equal(t, models.RiskUnknown, ClassifyID("CUSTOM-LICENSE-42"))
	assert.Equal(t, models.RiskUnknown, ClassifyID("unknown"))
	assert.Equal(t, models.RiskUnknown, ClassifyID(""))
}

func TestRiskTableSizes(t *testing.T) {
	counts := map[models.RiskTier]int{}
	for _, tier := range riskTable {
		counts[tier]++
	}
	assert.Equal(t, 24, counts[models.RiskPermissive])
	assert.Equal(t, 16, counts[models.RiskWeakCopyleft])
	assert.Equal(t, 10, counts[models.RiskStrongCopyleft])
}

func TestClassifyOrPicksMostPermissive(t *testing.T) {
	assert.Equal(t, models.RiskPermissive, classifyRaw("MIT OR GPL-3.0"))
	assert.Equal(t, models.RiskWeakCopyleft, classifyRaw("GPL-3.0 OR LGPL-3.0"))
}

func TestClassifyAndPicksMostRestrictive(t *testing.T) {
	assert.Equal(t, models.RiskStrongCopyleft, classifyRaw("MIT AND GPL-3.0"))
	assert.Equal(t, models.RiskWeakCopyleft, classifyRaw("MIT AND LGPL-2.1"))
}

func TestClassifySlashSeparator(t *testing.T) {
	assert.Equal(t, models.RiskPermissive, classifyRaw("MIT/Apache-2.0"))
	assert.Equal(t, models.RiskPermissive, classifyRaw("MIT/GPL-3.0"))
}

func TestClassifyWithException(t *testing.T) {
	// The base identifier drives classification; the exception is metadata
	assert.Equal(t, models.RiskStrongCopyleft, classifyRaw("GPL-2.0 WITH Classpath-exception-2.0"))
}

func TestClassifyProprietaryOverride(t *testing.T) {
	assert.Equal(t, models.RiskProprietary, classifyRaw("Proprietary"))
	assert.Equal(t, models.RiskProprietary, classifyRaw("commercial license"))
	// The override wins even over an SPDX-shaped substring
	assert.Equal(t, models.RiskProprietary, classifyRaw("MIT (commercial use restricted)"))
}

func TestClassifyUnknownInputs(t *testing.T) {
	assert.Equal(t, models.RiskUnknown, classifyRaw(""))
	assert.Equal(t, models.RiskUnknown, classifyRaw("unknown"))
	assert.Equal(t, models.RiskUnknown, classifyRaw("CUSTOM-LICENSE-42"))
}
