package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rentd-dev/rentd/internal/api"
	"github.com/rentd-dev/rentd/internal/auth"
	"github.com/rentd-dev/rentd/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a rental server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set RENTD_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set RENTD_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(email, password string) error {
	// Check for environment variables (useful for CI/CD)
	if email == "" {
		email = os.Getenv("RENTD_EMAIL")
	}
	if password == "" {
		password = os.Getenv("RENTD_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or RENTD_EMAIL env var)")
	}

	server, err := getSelectedServer("")
	if err != nil {
		return err
	}

	// Prompt for password if not provided via flag or env var
	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or RENTD_PASSWORD env var)")
		}
	}

	apiClient := api.New(server.Address)

	fmt.Printf("Logging in to %s (%s)...\n", server.Alias, server.Address)

	result, err := apiClient.Authenticate(email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Persist the credential first, then update the session, so the
	// session never claims an identity the keyring does not back.
	if err := auth.SaveToken(server.Address, result.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}

	store := session.New(server.Address, auth.Default)
	store.SetUser(result.Identity)

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s\n", result.Identity.Email)
	for _, role := range result.Identity.Roles {
		fmt.Printf("  Role: %s\n", role.Label())
	}

	return nil
}
