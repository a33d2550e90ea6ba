package update

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// SelfUpdate downloads the latest release binary, verifies its checksum and
// replaces the running executable.
func SelfUpdate(currentVersion string) error {
	latest, err := LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if !isNewer(currentVersion, latest) {
		fmt.Printf("Already up to date (version %s)\n", currentVersion)
		return nil
	}

	fmt.Printf("Updating from %s to %s...\n", currentVersion, latest)

	binaryName, err := releaseBinaryName()
	if err != nil {
		return err
	}

	fmt.Println("Downloading new version...")
	downloadURL := fmt.Sprintf("%s/%s/%s", downloadBaseURL, latest, binaryName)

	tmpFile, err := downloadFile(downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download update: %w", err)
	}
	defer os.Remove(tmpFile)

	fmt.Println("Verifying checksum...")
	if err := verifyChecksum(tmpFile, downloadURL+".sha256"); err != nil {
		return fmt.Errorf("checksum verification failed: %w", err)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	fmt.Println("Installing new version...")
	if err := replaceBinary(tmpFile, execPath); err != nil {
		return fmt.Errorf("failed to install update: %w", err)
	}

	fmt.Printf("\n✓ Successfully updated to version %s!\n", latest)

	return nil
}

// releaseBinaryName returns the asset name published for the current platform
func releaseBinaryName() (string, error) {
	switch runtime.GOOS {
	case "linux", "darwin":
		switch runtime.GOARCH {
		case "amd64", "arm64":
			return fmt.Sprintf("rentd-%s-%s", runtime.GOOS, runtime.GOARCH), nil
		}
	case "windows":
		if runtime.GOARCH == "amd64" {
			return "rentd-windows-amd64.exe", nil
		}
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return "", fmt.Errorf("unsupported architecture: %s", runtime.GOARCH)
}

// downloadFile downloads a URL to a temporary file and returns its path
func downloadFile(url string) (string, error) {
	client := &http.Client{
		Timeout: 5 * time.Minute, // Binary download can take time
	}

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	tmpFile, err := os.CreateTemp("", "rentd-update-*")
	if err != nil {
		return "", err
	}
	defer tmpFile.Close()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		os.Remove(tmpFile.Name())
		return "", err
	}

	return tmpFile.Name(), nil
}

// verifyChecksum fetches the published SHA256 and compares it to the file
func verifyChecksum(filePath, checksumURL string) error {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequest("GET", checksumURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download checksum (status %d)", resp.StatusCode)
	}

	checksumData, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// Checksum files have the format "hash  filename"
	parts := strings.Fields(string(checksumData))
	if len(parts) < 1 {
		return fmt.Errorf("invalid checksum format")
	}
	expected := parts[0]

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	actual := fmt.Sprintf("%x", h.Sum(nil))

	if actual != expected {
		return fmt.Errorf("checksum mismatch (expected: %s, got: %s)", expected, actual)
	}

	return nil
}

// replaceBinary swaps the running executable for the freshly downloaded one
func replaceBinary(newBinaryPath, currentBinaryPath string) error {
	if err := os.Chmod(newBinaryPath, 0755); err != nil {
		return err
	}

	// Windows cannot overwrite a running executable, so rename the old one
	// aside and move the new one in place
	if runtime.GOOS == "windows" {
		backupPath := currentBinaryPath + ".old"
		os.Remove(backupPath)

		if err := os.Rename(currentBinaryPath, backupPath); err != nil {
			return fmt.Errorf("failed to backup current binary: %w", err)
		}
		if err := os.Rename(newBinaryPath, currentBinaryPath); err != nil {
			os.Rename(backupPath, currentBinaryPath)
			return fmt.Errorf("failed to install new binary: %w", err)
		}

		fmt.Println("\nNote: Old binary saved as .old - you can delete it manually")
		return nil
	}

	backupPath := currentBinaryPath + ".backup"
	if err := copyFile(currentBinaryPath, backupPath); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := copyFile(newBinaryPath, currentBinaryPath); err != nil {
		copyFile(backupPath, currentBinaryPath)
		return fmt.Errorf("failed to install new binary: %w", err)
	}

	os.Remove(backupPath)

	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	sourceInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.Chmod(dst, sourceInfo.Mode())
}
