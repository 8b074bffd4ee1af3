package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// fetchCratesIO reads the license field from the crates.io version API.
func (c *Client) fetchCratesIO(ctx context.Context, name, version string) (string, error) {
	url := fmt.Sprintf("%s/api/v1/crates/%s/%s", c.CratesBaseURL, name, version)

	resp, err := c.get(ctx, url, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	var data struct {
		Version struct {
			License string `json:"license"`
		} `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	return data.Version.License, nil
}
