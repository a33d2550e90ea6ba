package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	releasesAPIURL  = "https://api.github.com/repos/rentd-dev/rentd/releases/latest"
	downloadBaseURL = "https://github.com/rentd-dev/rentd/releases/download"
	userAgent       = "rentd-cli"
)

// Release is the subset of the GitHub release payload we care about
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// LatestVersion fetches the tag of the most recent release from GitHub
func LatestVersion() (string, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequest("GET", releasesAPIURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return release.TagName, nil
}

// CheckForUpdate reports whether a newer release than currentVersion exists
func CheckForUpdate(currentVersion string) (bool, string, error) {
	latest, err := LatestVersion()
	if err != nil {
		return false, "", err
	}

	return isNewer(currentVersion, latest), latest, nil
}

// isNewer returns true if latest differs from current
func isNewer(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")

	// Development builds always want the released version
	if current == "dev" {
		return true
	}

	return current != latest
}

// PrintUpdateNotification prints a hint on stderr when a newer release exists.
// Errors are swallowed, the check is best-effort.
func PrintUpdateNotification(currentVersion string) {
	available, latest, err := CheckForUpdate(currentVersion)
	if err != nil {
		return
	}

	if available {
		fmt.Fprintf(os.Stderr, "New version %s -> %s. Run: rentd update\n\n", currentVersion, latest)
	}
}
