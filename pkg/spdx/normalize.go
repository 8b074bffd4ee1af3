package spdx

import "strings"

// spellings maps common non-SPDX license strings, as found in manifests and
// registry metadata, to their canonical SPDX identifiers.
var spellings = map[string]string{
	"apache 2.0":                       "Apache-2.0",
	"apache license 2.0":               "Apache-2.0",
	"apache license, version 2.0":      "Apache-2.0",
	"apache software license":          "Apache-2.0",
	"mit license":                      "MIT",
	"the mit license":                  "MIT",
	"bsd":                              "BSD-3-Clause",
	"bsd license":                      "BSD-3-Clause",
	"bsd 2-clause":                     "BSD-2-Clause",
	"simplified bsd":                   "BSD-2-Clause",
	"bsd 3-clause":                     "BSD-3-Clause",
	"new bsd":                          "BSD-3-Clause",
	"modified bsd":                     "BSD-3-Clause",
	"gnu gpl v2":                       "GPL-2.0",
	"gnu general public license v2":    "GPL-2.0",
	"gpl v2":                           "GPL-2.0",
	"gplv2":                            "GPL-2.0",
	"gnu gpl v3":                       "GPL-3.0",
	"gnu general public license v3":    "GPL-3.0",
	"gpl v3":                           "GPL-3.0",
	"gplv3":                            "GPL-3.0",
	"gnu lgpl v2.1":                    "LGPL-2.1",
	"lgpl v2.1":                        "LGPL-2.1",
	"lgplv2.1":                         "LGPL-2.1",
	"gnu lgpl v3":                      "LGPL-3.0",
	"lgpl v3":                          "LGPL-3.0",
	"lgplv3":                           "LGPL-3.0",
	"mozilla public license 2.0":       "MPL-2.0",
	"mpl 2.0":                          "MPL-2.0",
	"mplv2":                            "MPL-2.0",
	"isc license":                      "ISC",
	"cc0":                              "CC0-1.0",
	"public domain":                    "CC0-1.0",
	"agpl v3":                          "AGPL-3.0",
	"agplv3":                           "AGPL-3.0",
	"gnu agpl v3":                      "AGPL-3.0",
	"zlib license":                     "Zlib",
	"python software foundation license": "PSF-2.0",
	"boost software license":           "BSL-1.0",
}

// Normalize maps a single license identifier to its canonical SPDX form.
// Already-canonical identifiers pass through unchanged, which makes the
// mapping idempotent.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canonical, ok := spellings[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}
