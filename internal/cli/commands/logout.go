package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentd-dev/rentd/internal/auth"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored credential for the selected server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	server, err := getSelectedServer("")
	if err != nil {
		return err
	}

	// Deleting an absent token is a no-op, so logout is idempotent
	if err := auth.DeleteToken(server.Address); err != nil {
		return fmt.Errorf("failed to remove credential: %w", err)
	}

	store := restoreSession(server)
	store.Logout()

	fmt.Printf("Logged out of %s (%s)\n", server.Alias, server.Address)
	return nil
}
