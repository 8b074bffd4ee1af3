package registry

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// fetchMaven downloads the artifact's POM from Maven Central and extracts
// the first <licenses><license><name>. The name is expected in
// "groupId:artifactId" form.
func (c *Client) fetchMaven(ctx context.Context, name, version string) (string, error) {
	parts := strings.SplitN(name, ":", 2)
	if len(parts) != 2 {
		return "", nil
	}
	groupPath := strings.ReplaceAll(parts[0], ".", "/")
	artifactID := parts[1]

	url := fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom",
		c.MavenBaseURL, groupPath, artifactID, version, artifactID, version)

	resp, err := c.get(ctx, url, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return licenseFromPom(body), nil
}

type pomLicenses struct {
	Licenses []struct {
		Name string `xml:"name"`
	} `xml:"licenses>license"`
}

func licenseFromPom(pom []byte) string {
	var parsed pomLicenses
	if err := xml.Unmarshal(pom, &parsed); err != nil {
		return ""
	}
	if len(parsed.Licenses) == 0 {
		return ""
	}
	return strings.TrimSpace(parsed.Licenses[0].Name)
}
