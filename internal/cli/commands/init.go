package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rentd-dev/rentd/internal/cli/config"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <address>",
		Short: "Register a rental server in the local config",
		Args:  cobra.ExactArgs(1),
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	address := args[0]

	currentDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(currentDir, config.ConfigFileName)

	var cfg *config.Config
	isNewConfig := false

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load existing config: %w", err)
		}
		fmt.Printf("Found existing %s\n", config.ConfigFileName)
	} else {
		cfg = &config.Config{
			Servers: []config.Server{},
		}
		isNewConfig = true
	}

	// Check if server already exists
	for _, server := range cfg.Servers {
		if server.Address == address {
			fmt.Printf("Server %s already exists in %s\n", address, config.ConfigFileName)
			return nil
		}
	}

	alias := "production"
	if len(cfg.Servers) > 0 {
		alias = fmt.Sprintf("server-%d", len(cfg.Servers)+1)
	}

	cfg.Servers = append(cfg.Servers, config.Server{
		Address: address,
		Alias:   alias,
	})

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	if isNewConfig {
		fmt.Printf("✓ Created ./%s with server %s (%s)\n", config.ConfigFileName, address, alias)
	} else {
		fmt.Printf("✓ Added server %s (%s) to ./%s\n", address, alias, config.ConfigFileName)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Run 'rentd login' to authenticate, or 'rentd register' to create an account")
	fmt.Println("  2. Run 'rentd cars ls' to browse the catalog")

	return nil
}
