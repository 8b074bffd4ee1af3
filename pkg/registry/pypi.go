package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// fetchPyPI reads info.license from the PyPI JSON API. A "*" version asks
// for the latest release.
func (c *Client) fetchPyPI(ctx context.Context, name, version string) (string, error) {
	var url string
	if version == "*" {
		url = fmt.Sprintf("%s/pypi/%s/json", c.PyPIBaseURL, name)
	} else {
		url = fmt.Sprintf("%s/pypi/%s/%s/json", c.PyPIBaseURL, name, version)
	}

	resp, err := c.get(ctx, url, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var data struct {
		Info struct {
			License string `json:"license"`
		} `json:"info"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	return data.Info.License, nil
}
