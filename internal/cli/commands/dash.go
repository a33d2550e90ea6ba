package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"
)

// NewDashCmd creates the dash command
func NewDashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Open the rental website in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDash()
		},
	}
}

func runDash() error {
	server, err := getSelectedServer("")
	if err != nil {
		return err
	}

	siteURL := fmt.Sprintf("https://%s", server.Address)

	fmt.Printf("Opening %s (%s)...\n", server.Alias, server.Address)
	fmt.Printf("URL: %s\n", siteURL)

	if err := openBrowser(siteURL); err != nil {
		return fmt.Errorf("failed to open browser: %w\nPlease visit: %s", err, siteURL)
	}

	return nil
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
