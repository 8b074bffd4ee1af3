package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// fetchNpm reads the license field from the npm registry. Scoped package
// names are URL-encoded (@scope/pkg -> %40scope%2Fpkg). A "*" version
// resolves through dist-tags.latest.
func (c *Client) fetchNpm(ctx context.Context, name, version string) (string, error) {
	encoded := strings.NewReplacer("@", "%40", "/", "%2F").Replace(name)

	var url string
	if version == "*" {
		url = fmt.Sprintf("%s/%s", c.NpmBaseURL, encoded)
	} else {
		url = fmt.Sprintf("%s/%s/%s", c.NpmBaseURL, encoded, version)
	}

	resp, err := c.get(ctx, url, "application/json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	if version == "*" {
		var data struct {
			DistTags map[string]string `json:"dist-tags"`
			Versions map[string]struct {
				License string `json:"license"`
			} `json:"versions"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return "", err
		}
		latest, ok := data.DistTags["latest"]
		if !ok {
			return "", nil
		}
		return data.Versions[latest].License, nil
	}

	var data struct {
		License string `json:"license"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	return data.License, nil
}
