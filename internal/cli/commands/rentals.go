package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentd-dev/rentd/internal/api"
	"github.com/rentd-dev/rentd/internal/models"
	"github.com/rentd-dev/rentd/internal/pricing"
)

// rentalsClient is the slice of the API client the rentals commands need
type rentalsClient interface {
	ListRentals() ([]models.Rental, error)
	GetRental(id int64) (*models.Rental, error)
	AddRental(email string, providerID int64, rental models.Rental) (int64, error)
	DeleteRental(id int64) error
}

// NewRentalsCmd creates the rentals command group
func NewRentalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rentals",
		Short: "Book and manage rentals",
	}

	cmd.AddCommand(newRentalsListCmd())
	cmd.AddCommand(newRentalsGetCmd())
	cmd.AddCommand(newRentalsAddCmd())
	cmd.AddCommand(newRentalsDeleteCmd())

	return cmd
}

func newRentalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List rentals",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runRentalsList(api.New(server.Address), os.Stdout)
		},
	}
}

func runRentalsList(client rentalsClient, out io.Writer) error {
	rentals, err := client.ListRentals()
	if err != nil {
		return err
	}

	if len(rentals) == 0 {
		fmt.Fprintln(out, "No rentals found.")
		fmt.Fprintln(out, "\nBook a car with: rentd rentals add")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROVIDER\tFROM\tTO\tUSER")
	for _, rental := range rentals {
		provider := "-"
		if rental.Provider != nil {
			provider = rental.Provider.Name
		}
		user := "-"
		if rental.User != nil {
			user = rental.User.Email
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			rental.ID, provider,
			formatMillis(rental.StartTime), formatMillis(rental.EndTime), user)
	}
	w.Flush()

	return nil
}

func newRentalsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <rental-id>",
		Short: "Show a rental",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rental ID '%s'", args[0])
			}
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runRentalsGet(api.New(server.Address), os.Stdout, id)
		},
	}
}

func runRentalsGet(client rentalsClient, out io.Writer, id int64) error {
	rental, err := client.GetRental(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Rental %d\n", rental.ID)
	fmt.Fprintf(out, "  From: %s\n", formatMillis(rental.StartTime))
	fmt.Fprintf(out, "  To:   %s\n", formatMillis(rental.EndTime))
	if rental.Provider != nil {
		fmt.Fprintf(out, "  Provider: %s (%s), %.0f/day\n",
			rental.Provider.Name, rental.Provider.Location, rental.Provider.Price)
		estimate := pricing.Estimate(rental.Provider.Price, rental.Starts(), rental.Ends())
		fmt.Fprintf(out, "  Estimated total: %.0f\n", estimate)
	}
	if rental.User != nil {
		fmt.Fprintf(out, "  User: %s\n", rental.User.Email)
	}

	return nil
}

func newRentalsAddCmd() *cobra.Command {
	var email, from, to string
	var providerID int64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a provider's car for a time window",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}

			store := restoreSession(server)
			if email == "" {
				if user := store.User(); user != nil {
					email = user.Email
				}
			}
			if email == "" {
				return fmt.Errorf("not authenticated. Please run 'rentd login' first or pass --email")
			}

			rental, err := parseRentalWindow(from, to)
			if err != nil {
				return err
			}

			return runRentalsAdd(api.New(server.Address), os.Stdout, email, providerID, rental)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (defaults to the logged-in user)")
	cmd.Flags().Int64Var(&providerID, "provider", 0, "Provider ID to book from")
	cmd.Flags().StringVar(&from, "from", "", "Start time (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "End time (YYYY-MM-DD or RFC 3339)")

	return cmd
}

// parseRentalWindow converts the from/to flags into a rental with
// unix-millisecond bounds
func parseRentalWindow(from, to string) (models.Rental, error) {
	start, err := parseTimeFlag(from)
	if err != nil {
		return models.Rental{}, fmt.Errorf("invalid --from: %w", err)
	}
	end, err := parseTimeFlag(to)
	if err != nil {
		return models.Rental{}, fmt.Errorf("invalid --to: %w", err)
	}
	if !end.After(start) {
		return models.Rental{}, fmt.Errorf("--to must be after --from")
	}

	return models.Rental{
		StartTime: start.UnixMilli(),
		EndTime:   end.UnixMilli(),
	}, nil
}

func parseTimeFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("time is required")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func runRentalsAdd(client rentalsClient, out io.Writer, email string, providerID int64, rental models.Rental) error {
	if providerID == 0 {
		return fmt.Errorf("--provider is required (find provider IDs with 'rentd cars get')")
	}

	id, err := client.AddRental(email, providerID, rental)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Booked rental %d for %s (%s to %s)\n",
		id, email, formatMillis(rental.StartTime), formatMillis(rental.EndTime))
	return nil
}

func newRentalsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <rental-id>",
		Aliases: []string{"delete"},
		Short:   "Cancel a rental",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rental ID '%s'", args[0])
			}
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runRentalsDelete(api.New(server.Address), os.Stdout, id)
		},
	}
}

func runRentalsDelete(client rentalsClient, out io.Writer, id int64) error {
	if err := client.DeleteRental(id); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Cancelled rental %d\n", id)
	return nil
}
