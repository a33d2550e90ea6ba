package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rentd-dev/rentd/internal/cli/commands"
	"github.com/rentd-dev/rentd/internal/cli/update"
	"github.com/rentd-dev/rentd/internal/config"
	"github.com/rentd-dev/rentd/internal/logger"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "rentd",
	Short: "Rentd - car rental from the command line",
	Long: `Rentd CLI - Browse the car catalog, manage your account and book
rentals against a rental backend.

Administrators can also manage the catalog, user accounts, rentals and
receipts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)

		// Skip update check for the update and version commands
		if cmd.Name() == "update" || cmd.Name() == "version" {
			return
		}

		update.PrintUpdateNotification(version)
	},
}

func init() {
	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rentd version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewSelectServerCmd())
	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewCarsCmd())
	rootCmd.AddCommand(commands.NewUsersCmd())
	rootCmd.AddCommand(commands.NewRentalsCmd())
	rootCmd.AddCommand(commands.NewReceiptsCmd())
	rootCmd.AddCommand(commands.NewDashCmd())
	rootCmd.AddCommand(commands.NewUpdateCmd(version))
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
