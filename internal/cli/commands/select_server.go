package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentd-dev/rentd/internal/cli/config"
	"github.com/rentd-dev/rentd/internal/cli/serverselect"
	"github.com/rentd-dev/rentd/internal/cli/userconfig"
)

// NewSelectServerCmd creates the select-server command
func NewSelectServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-server [address-or-alias]",
		Short: "Select the server to use for commands",
		Long: `Select the server to use for commands.

If no param is provided, an interactive prompt will be shown.

Examples:
  $ rentd select-server                    # Interactive selection
  $ rentd select-server rental.example.com # Select by address
  $ rentd select-server production         # Select by alias`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var addressOrAlias string
			if len(args) > 0 {
				addressOrAlias = args[0]
			}
			return runSelectServer(addressOrAlias)
		},
	}
}

func runSelectServer(addressOrAlias string) error {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return fmt.Errorf("failed to load config: %w\nRun 'rentd init' to create a configuration file", err)
	}

	var server *config.Server

	if addressOrAlias != "" {
		server, err = serverselect.GetServerByAddressOrAlias(cfg, addressOrAlias)
		if err != nil {
			return err
		}
	} else {
		server, err = serverselect.PromptServerSelection(cfg)
		if err != nil {
			return err
		}
	}

	if err := userconfig.SetSelectedServer(server.Address); err != nil {
		return fmt.Errorf("failed to save selected server: %w", err)
	}

	fmt.Printf("Selected server: %s (%s)\n", server.Alias, server.Address)
	return nil
}
