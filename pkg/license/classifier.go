// Package license maps canonical SPDX identifiers to legal risk tiers.
package license

import (
	"strings"

	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/pkg/spdx"
)

// riskTable maps canonical SPDX identifiers to their risk tier.
// Identifiers absent from the table classify as Unknown.
var riskTable = map[string]models.RiskTier{
	// Permissive
	"MIT":            models.RiskPermissive,
	"Apache-2.0":     models.RiskPermissive,
	"Apache-1.1":     models.RiskPermissive,
	"BSD-2-Clause":   models.RiskPermissive,
	"BSD-3-Clause":   models.RiskPermissive,
	"BSD-4-Clause":   models.RiskPermissive,
	"ISC":            models.RiskPermissive,
	"0BSD":           models.RiskPermissive,
	"Unlicense":      models.RiskPermissive,
	"Zlib":           models.RiskPermissive,
	"CC0-1.0":        models.RiskPermissive,
	"WTFPL":          models.RiskPermissive,
	"CC-BY-4.0":      models.RiskPermissive,
	"CC-BY-3.0":      models.RiskPermissive,
	"PSF-2.0":        models.RiskPermissive,
	"Python-2.0":     models.RiskPermissive,
	"MIT-0":          models.RiskPermissive,
	"BlueOak-1.0.0":  models.RiskPermissive,
	"Artistic-2.0":   models.RiskPermissive,
	"BSL-1.0":        models.RiskPermissive,
	"PostgreSQL":     models.RiskPermissive,
	"NCSA":           models.RiskPermissive,
	"UPL-1.0":        models.RiskPermissive,
	"OpenSSL":        models.RiskPermissive,

	// Weak copyleft
	"LGPL-2.0":          models.RiskWeakCopyleft,
	"LGPL-2.0-only":     models.RiskWeakCopyleft,
	"LGPL-2.0-or-later": models.RiskWeakCopyleft,
	"LGPL-2.1":          models.RiskWeakCopyleft,
	"LGPL-2.1-only":     models.RiskWeakCopyleft,
	"LGPL-2.1-or-later": models.RiskWeakCopyleft,
	"LGPL-3.0":          models.RiskWeakCopyleft,
	"LGPL-3.0-only":     models.RiskWeakCopyleft,
	"LGPL-3.0-or-later": models.RiskWeakCopyleft,
	"MPL-2.0":           models.RiskWeakCopyleft,
	"EUPL-1.2":          models.RiskWeakCopyleft,
	"CDDL-1.0":          models.RiskWeakCopyleft,
	"EPL-1.0":           models.RiskWeakCopyleft,
	"EPL-2.0":           models.RiskWeakCopyleft,
	"APSL-2.0":          models.RiskWeakCopyleft,
	"OSL-3.0":           models.RiskWeakCopyleft,

	// Strong copyleft
	"GPL-2.0":          models.RiskStrongCopyleft,
	"GPL-2.0-only":     models.RiskStrongCopyleft,
	"GPL-2.0-or-later": models.RiskStrongCopyleft,
	"GPL-3.0":          models.RiskStrongCopyleft,
	"GPL-3.0-only":     models.RiskStrongCopyleft,
	"GPL-3.0-or-later": models.RiskStrongCopyleft,
	"AGPL-3.0":         models.RiskStrongCopyleft,
	"AGPL-3.0-only":    models.RiskStrongCopyleft,
	"AGPL-3.0-or-later": models.RiskStrongCopyleft,
	"EUPL-1.1":         models.RiskStrongCopyleft,
}

// proprietaryKeywords flag license text that names a commercial grant.
// The scan runs on the raw pre-normalization string and overrides any
// SPDX-shaped substring.
var proprietaryKeywords = []string{
	"proprietary",
	"commercial",
	"all rights reserved",
}

// ClassifyID maps one canonical SPDX identifier to its risk tier.
func ClassifyID(id string) models.RiskTier {
	if tier, ok := riskTable[strings.TrimSpace(id)]; ok {
		return tier
	}
	return models.RiskUnknown
}

// Classify evaluates the risk of a parsed license expression. The raw
// pre-normalization string is scanned for proprietary keywords first;
// a hit wins over whatever the expression says.
func Classify(expr spdx.Expr, raw string) models.RiskTier {
	if IsProprietary(raw) {
		return models.RiskProprietary
	}
	return spdx.Fold(expr, ClassifyID, models.RiskTier.Rank)
}

// IsProprietary reports whether the raw license string names a
// proprietary or commercial grant.
func IsProprietary(raw string) bool {
	lower := strings.ToLower(raw)
	for _, kw := range proprietaryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
