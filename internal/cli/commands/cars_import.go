package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rentd-dev/rentd/internal/api"
	"github.com/rentd-dev/rentd/internal/models"
)

// carCatalogFile is the YAML layout for bulk imports
type carCatalogFile struct {
	Cars []models.Car `yaml:"cars"`
}

func newCarsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Bulk-import cars from a YAML catalog (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := getSelectedServer("")
			if err != nil {
				return err
			}
			if err := requireAdmin(restoreSession(server)); err != nil {
				return err
			}
			return runCarsImport(api.New(server.Address), os.Stdout, args[0])
		},
	}
}

func runCarsImport(client carsClient, out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file carCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(file.Cars) == 0 {
		return fmt.Errorf("catalog file contains no cars")
	}

	// Stop at the first failure so a partial import is visible in the
	// output rather than silently skipped.
	for i, car := range file.Cars {
		id, err := client.AddCar(car)
		if err != nil {
			return fmt.Errorf("failed to import car %d of %d (%s %s): %w",
				i+1, len(file.Cars), car.Make, car.Model, err)
		}
		fmt.Fprintf(out, "✓ Imported %s %s (%d) with ID %d\n", car.Make, car.Model, car.Year, id)
	}

	fmt.Fprintf(out, "Imported %d cars.\n", len(file.Cars))
	return nil
}
