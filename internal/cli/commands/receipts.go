package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentd-dev/rentd/internal/api"
	"github.com/rentd-dev/rentd/internal/models"
)

// receiptsClient is the slice of the API client the receipts commands need
type receiptsClient interface {
	ListReceipts() ([]models.Receipt, error)
	GetReceipt(id int64) (*models.Receipt, error)
	AddReceipt(email string, rentalID int64, totalPrice float64) (int64, error)
	DeleteReceipt(id int64) error
}

// NewReceiptsCmd creates the receipts command group
func NewReceiptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "receipts",
		Short: "View and manage rental receipts",
	}

	cmd.AddCommand(newReceiptsListCmd())
	cmd.AddCommand(newReceiptsGetCmd())
	cmd.AddCommand(newReceiptsAddCmd())
	cmd.AddCommand(newReceiptsDeleteCmd())

	return cmd
}

func newReceiptsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List receipts",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runReceiptsList(api.New(server.Address), os.Stdout)
		},
	}
}

func runReceiptsList(client receiptsClient, out io.Writer) error {
	receipts, err := client.ListReceipts()
	if err != nil {
		return err
	}

	if len(receipts) == 0 {
		fmt.Fprintln(out, "No receipts found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAR\tPROVIDER\tFROM\tTO\tTOTAL")
	for _, receipt := range receipts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.0f\n",
			receipt.ID, receipt.CarName, receipt.ProviderName,
			formatMillis(receipt.StartTime), formatMillis(receipt.EndTime),
			receipt.TotalPrice)
	}
	w.Flush()

	return nil
}

func newReceiptsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <receipt-id>",
		Short: "Show a receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid receipt ID '%s'", args[0])
			}
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runReceiptsGet(api.New(server.Address), os.Stdout, id)
		},
	}
}

func runReceiptsGet(client receiptsClient, out io.Writer, id int64) error {
	receipt, err := client.GetReceipt(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Receipt %d\n", receipt.ID)
	fmt.Fprintf(out, "  Car:      %s\n", receipt.CarName)
	fmt.Fprintf(out, "  Provider: %s\n", receipt.ProviderName)
	fmt.Fprintf(out, "  From:     %s\n", formatMillis(receipt.StartTime))
	fmt.Fprintf(out, "  To:       %s\n", formatMillis(receipt.EndTime))
	fmt.Fprintf(out, "  Total:    %.2f\n", receipt.TotalPrice)

	return nil
}

func newReceiptsAddCmd() *cobra.Command {
	var email string
	var rentalID int64
	var total float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Generate a receipt from a rental",
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

			return runReceiptsAdd(api.New(server.Address), os.Stdout, email, rentalID, total)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (defaults to the logged-in user)")
	cmd.Flags().Int64Var(&rentalID, "rental", 0, "Rental ID to generate the receipt from")
	cmd.Flags().Float64Var(&total, "total", 0, "Total price")

	return cmd
}

func runReceiptsAdd(client receiptsClient, out io.Writer, email string, rentalID int64, total float64) error {
	if rentalID == 0 {
		return fmt.Errorf("--rental is required")
	}

	id, err := client.AddReceipt(email, rentalID, total)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Created receipt %d for rental %d\n", id, rentalID)
	return nil
}

func newReceiptsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <receipt-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a receipt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid receipt ID '%s'", args[0])
			}
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runReceiptsDelete(api.New(server.Address), os.Stdout, id)
		},
	}
}

func runReceiptsDelete(client receiptsClient, out io.Writer, id int64) error {
	if err := client.DeleteReceipt(id); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Deleted receipt %d\n", id)
	return nil
}
