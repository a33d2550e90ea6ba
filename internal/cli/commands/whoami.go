package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhoami()
		},
	}
}

func runWhoami() error {
	server, err := getSelectedServer("")
	if err != nil {
		return err
	}

	store := restoreSession(server)
	user := store.User()
	if user == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	labels := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		labels[i] = role.Label()
	}

	fmt.Printf("%s (%s)\n", user.Email, strings.Join(labels, ", "))
	return nil
}
