package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rentd-dev/rentd/internal/api"
	"github.com/rentd-dev/rentd/internal/auth"
	"github.com/rentd-dev/rentd/internal/models"
)

// usersClient is the slice of the API client the users commands need
type usersClient interface {
	ListUsers() ([]models.User, error)
	GetUser(email string) (*models.User, error)
	UpdateUser(email string, update models.UserUpdate) (string, error)
	UpdateUserPassword(email string, update models.PasswordUpdate) error
	DeleteUser(email string) error
}

// NewUsersCmd creates the users command group
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersUpdateCmd())
	cmd.AddCommand(newUsersDeleteCmd())
	cmd.AddCommand(newUsersPasswdCmd())

	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all user accounts (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			if err := requireAdmin(restoreSession(server)); err != nil {
				return err
			}
			return runUsersList(api.New(server.Address), os.Stdout)
		},
	}
}

func runUsersList(client usersClient, out io.Writer) error {
	users, err := client.ListUsers()
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(out, "No users found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMAIL\tNAME\tPHONE\tACTIVE\tROLES")
	for _, user := range users {
		labels := make([]string, len(user.Roles))
		for i, role := range user.Roles {
			labels[i] = role.Label()
		}
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%t\t%s\n",
			user.Email, user.FirstName, user.LastName,
			user.PhoneNumber, user.Active, strings.Join(labels, ", "))
	}
	w.Flush()

	return nil
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <email>",
		Short: "Show a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runUsersGet(api.New(server.Address), os.Stdout, args[0])
		},
	}
}

func runUsersGet(client usersClient, out io.Writer, email string) error {
	user, err := client.GetUser(email)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	fmt.Fprintf(out, "  Phone:  %s\n", user.PhoneNumber)
	if user.DateOfBirth != "" {
		fmt.Fprintf(out, "  Born:   %s\n", user.DateOfBirth)
	}
	fmt.Fprintf(out, "  Active: %t\n", user.Active)
	for _, role := range user.Roles {
		fmt.Fprintf(out, "  Role:   %s\n", role.Label())
	}

	return nil
}

func newUsersUpdateCmd() *cobra.Command {
	var update models.UserUpdate

	cmd := &cobra.Command{
		Use:   "update <email>",
		Short: "Update a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runUsersUpdate(api.New(server.Address), os.Stdout, server.Address, args[0], update)
		},
	}

	cmd.Flags().StringVar(&update.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&update.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&update.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&update.DateOfBirth, "date-of-birth", "", "Date of birth (YYYY-MM-DD)")

	return cmd
}

func runUsersUpdate(client usersClient, out io.Writer, server, email string, update models.UserUpdate) error {
	token, err := client.UpdateUser(email, update)
	if err != nil {
		return err
	}

	// The backend re-issues the token when account data changes.
	// Persist it so the stored credential matches the new account.
	if token != "" {
		if err := auth.SaveToken(server, token); err != nil {
			return fmt.Errorf("account updated but failed to save re-issued token: %w", err)
		}
	}

	fmt.Fprintf(out, "✓ Updated %s\n", email)
	return nil
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <email>",
		Aliases: []string{"delete"},
		Short:   "Delete a user account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runUsersDelete(api.New(server.Address), os.Stdout, args[0])
		},
	}
}

func runUsersDelete(client usersClient, out io.Writer, email string) error {
	if err := client.DeleteUser(email); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Deleted %s\n", email)
	return nil
}

func newUsersPasswdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd <email>",
		Short: "Change a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}

			update, err := promptPasswords()
			if err != nil {
				return err
			}

			return runUsersPasswd(api.New(server.Address), os.Stdout, args[0], update)
		},
	}
}

func promptPasswords() (models.PasswordUpdate, error) {
	var update models.PasswordUpdate

	if !term.IsTerminal(int(syscall.Stdin)) {
		return update, fmt.Errorf("password change requires an interactive terminal")
	}

	fmt.Print("Current password: ")
	oldPassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return update, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("New password: ")
	newPassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return update, fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	update.OldPassword = string(oldPassword)
	update.NewPassword = string(newPassword)
	return update, nil
}

func runUsersPasswd(client usersClient, out io.Writer, email string, update models.PasswordUpdate) error {
	if err := client.UpdateUserPassword(email, update); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Password changed for %s\n", email)
	return nil
}
