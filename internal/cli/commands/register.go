package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rentd-dev/rentd/internal/api"
	"github.com/rentd-dev/rentd/internal/auth"
	"github.com/rentd-dev/rentd/internal/models"
	"github.com/rentd-dev/rentd/internal/session"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var req models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(req)
		},
	}

	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.DateOfBirth, "date-of-birth", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (or set RENTD_PASSWORD, will prompt if not provided)")

	return cmd
}

func runRegister(req models.RegisterRequest) error {
	if req.Password == "" {
		req.Password = os.Getenv("RENTD_PASSWORD")
	}

	server, err := getSelectedServer("")
	if err != nil {
		return err
	}

	if req.Password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			req.Password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or RENTD_PASSWORD env var)")
		}
	}

	apiClient := api.New(server.Address)

	result, err := apiClient.Register(req)
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	if err := auth.SaveToken(server.Address, result.Token); err != nil {
		return fmt.Errorf("failed to save authentication token: %w", err)
	}

	store := session.New(server.Address, auth.Default)
	store.SetUser(result.Identity)

	fmt.Println("✓ Account created!")
	fmt.Printf("  User: %s\n", result.Identity.Email)
	return nil
}
