// Package registry fetches license metadata from upstream package
// registries. Every lookup returns ("", nil) when the package is missing
// or carries no license field; errors are reserved for transport failures.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/santoshdahal12/licensegate/internal/models"
)

const userAgent = "licensegate/0.1.0 (license compliance tool)"

// Client talks to the public package registries. Base URLs are fields so
// tests can point lookups at a local server.
type Client struct {
	http *http.Client

	CratesBaseURL string
	PyPIBaseURL   string
	NpmBaseURL    string
	MavenBaseURL  string
}

// NewClient builds a client with the public registry endpoints and the
// given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http:          &http.Client{Timeout: timeout},
		CratesBaseURL: "https://crates.io",
		PyPIBaseURL:   "https://pypi.org",
		NpmBaseURL:    "https://registry.npmjs.org",
		MavenBaseURL:  "https://repo1.maven.org/maven2",
	}
}

// FetchLicense looks up the license string for one package in its
// ecosystem's registry. .NET has no registry client and always reports
// not-found.
func (c *Client) FetchLicense(ctx context.Context, eco models.Ecosystem, name, version string) (string, error) {
	switch eco {
	case models.EcosystemRust:
		return c.fetchCratesIO(ctx, name, version)
	case models.EcosystemPython:
		return c.fetchPyPI(ctx, name, version)
	case models.EcosystemJava:
		return c.fetchMaven(ctx, name, version)
	case models.EcosystemNode:
		return c.fetchNpm(ctx, name, version)
	case models.EcosystemDotnet:
		return "", nil
	default:
		return "", fmt.Errorf("unsupported ecosystem: %s", eco)
	}
}

func (c *Client) get(ctx context.Context, url string, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return c.http.Do(req)
}
