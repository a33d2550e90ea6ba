package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rentd-dev/rentd/internal/api"
	"github.com/rentd-dev/rentd/internal/catalog"
	"github.com/rentd-dev/rentd/internal/models"
)

// carsClient is the slice of the API client the cars commands need.
// Narrowed to an interface so tests can substitute a mock.
type carsClient interface {
	ListCars() ([]models.Car, error)
	GetCar(id int64) (*models.Car, error)
	AddCar(car models.Car) (int64, error)
	UpdateCar(id int64, car models.Car) error
	DeleteCar(id int64) error
}

// NewCarsCmd creates the cars command group
func NewCarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cars",
		Short: "Browse and manage the car catalog",
	}

	cmd.AddCommand(newCarsListCmd())
	cmd.AddCommand(newCarsGetCmd())
	cmd.AddCommand(newCarsAddCmd())
	cmd.AddCommand(newCarsDeleteCmd())
	cmd.AddCommand(newCarsImportCmd())

	return cmd
}

func newCarsListCmd() *cobra.Command {
	var criteria catalog.Criteria

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the car catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runCarsList(api.New(server.Address), os.Stdout, criteria)
		},
	}

	cmd.Flags().StringVar(&criteria.Make, "make", "", "Filter by make")
	cmd.Flags().StringVar(&criteria.FuelType, "fuel", "", "Filter by fuel type")
	cmd.Flags().StringVar(&criteria.Transmission, "transmission", "", "Filter by transmission type")
	cmd.Flags().IntVar(&criteria.MinSeats, "seats", 0, "Minimum number of seats")
	cmd.Flags().Float64Var(&criteria.MaxPrice, "max-price", 0, "Maximum daily price")
	cmd.Flags().StringVar(&criteria.Location, "location", "", "Filter by pick-up location")
	cmd.Flags().BoolVar(&criteria.AvailableOnly, "available", false, "Only show available cars")

	return cmd
}

func runCarsList(client carsClient, out io.Writer, criteria catalog.Criteria) error {
	cars, err := client.ListCars()
	if err != nil {
		return err
	}

	rows := catalog.Filter(catalog.Flatten(cars), criteria)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No cars found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMAKE\tMODEL\tYEAR\tCONFIGURATION\tFUEL\tSEATS\tPRICE/DAY")
	for _, row := range rows {
		price := "-"
		if row.Price > 0 {
			price = fmt.Sprintf("%.0f", row.Price)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
			row.CarID, row.Make, row.Model, row.Year,
			row.Configuration, row.FuelType, row.NumberOfSeats, price)
	}
	w.Flush()

	return nil
}

func newCarsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <car-id>",
		Short: "Show a car with its configurations and providers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid car ID '%s'", args[0])
			}
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			return runCarsGet(api.New(server.Address), os.Stdout, id)
		},
	}
}

func runCarsGet(client carsClient, out io.Writer, id int64) error {
	car, err := client.GetCar(id)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s (%d)\n", car.Make, car.Model, car.Year)
	for _, cfg := range car.Configurations {
		fmt.Fprintf(out, "\n  %s - %s, %s, %d seats\n",
			cfg.Name, cfg.FuelType, cfg.TransmissionType, cfg.NumberOfSeats)
		if len(cfg.ExtraFeatures) > 0 {
			names := make([]string, len(cfg.ExtraFeatures))
			for i, f := range cfg.ExtraFeatures {
				names[i] = f.Name
			}
			fmt.Fprintf(out, "  Extras: %s\n", strings.Join(names, ", "))
		}
		for _, p := range cfg.Providers {
			if !p.Visible {
				continue
			}
			status := "available"
			if !p.Available {
				status = "unavailable"
			}
			fmt.Fprintf(out, "    %s (%s): %.0f/day, %s\n", p.Name, p.Location, p.Price, status)
		}
	}

	return nil
}

func newCarsAddCmd() *cobra.Command {
	var car models.Car
	var cfg models.Configuration

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a car to the catalog (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			if err := requireAdmin(restoreSession(server)); err != nil {
				return err
			}
			if cfg.Name != "" {
				car.Configurations = []models.Configuration{cfg}
			}
			return runCarsAdd(api.New(server.Address), os.Stdout, car)
		},
	}

	cmd.Flags().StringVar(&car.Make, "make", "", "Car make")
	cmd.Flags().StringVar(&car.Model, "model", "", "Car model")
	cmd.Flags().IntVar(&car.Year, "year", 0, "Model year")
	cmd.Flags().StringVar(&cfg.Name, "config", "", "Configuration name (optional)")
	cmd.Flags().StringVar(&cfg.FuelType, "fuel", "", "Configuration fuel type")
	cmd.Flags().StringVar(&cfg.TransmissionType, "transmission", "", "Configuration transmission type")
	cmd.Flags().IntVar(&cfg.NumberOfSeats, "seats", 5, "Configuration seat count")

	return cmd
}

func runCarsAdd(client carsClient, out io.Writer, car models.Car) error {
	id, err := client.AddCar(car)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Added %s %s (%d) with ID %d\n", car.Make, car.Model, car.Year, id)
	return nil
}

func newCarsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <car-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a car from the catalog (admin)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid car ID '%s'", args[0])
			}
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			if err := requireAdmin(restoreSession(server)); err != nil {
				return err
			}
			return runCarsDelete(api.New(server.Address), os.Stdout, id)
		},
	}
}

func runCarsDelete(client carsClient, out io.Writer, id int64) error {
	if err := client.DeleteCar(id); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Deleted car %d\n", id)
	return nil
}
