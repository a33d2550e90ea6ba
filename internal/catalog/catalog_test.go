package catalog

import (
	"testing"

	"github.com/rentd-dev/rentd/internal/models"
)

func testCars() []models.Car {
	return []models.Car{
		{
			ID:   1,
			Make: "Volkswagen", Model: "Golf", Year: 2007,
			Configurations: []models.Configuration{
				{
					Name: "Base", FuelType: "Diesel", TransmissionType: "Manual", NumberOfSeats: 5,
					Providers: []models.Provider{
						{Name: "Miller Bil", Price: 600, Location: "Ålesund", Available: true, Visible: true},
						{Name: "Biller Bil", Price: 550, Location: "Stryn", Available: true, Visible: true},
					},
				},
			},
		},
		{
			ID:   2,
			Make: "Tesla", Model: "Model 3", Year: 2019,
			Configurations: []models.Configuration{
				{
					Name: "Long Range", FuelType: "Electric", TransmissionType: "Automatic", NumberOfSeats: 5,
					Providers: []models.Provider{
						{Name: "Biggernes Tesla", Price: 700, Location: "Alta", Available: true, Visible: true},
						{Name: "Tesla Tom (private)", Price: 500, Location: "Oslo", Available: false, Visible: false},
					},
				},
				{
					Name: "Performance", FuelType: "Electric", TransmissionType: "Automatic", NumberOfSeats: 5,
					Providers: []models.Provider{
						{Name: "Biggernes Tesla", Price: 900, Location: "Alta", Available: false, Visible: true},
					},
				},
			},
		},
		{
			ID:   3,
			Make: "Nissan", Model: "Leaf", Year: 2016,
			Configurations: []models.Configuration{
				{Name: "Base", FuelType: "Electric", TransmissionType: "Automatic", NumberOfSeats: 5},
			},
		},
	}
}

func TestFlatten(t *testing.T) {
	rows := Flatten(testCars())

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows (one per configuration), got %d", len(rows))
	}

	// Cheapest visible provider wins
	if rows[0].Price != 550 {
		t.Errorf("Golf price = %v, want 550", rows[0].Price)
	}

	// Invisible providers do not contribute price or locations
	modelThree := rows[1]
	if modelThree.Price != 700 {
		t.Errorf("Model 3 Long Range price = %v, want 700", modelThree.Price)
	}
	if len(modelThree.Locations) != 1 || modelThree.Locations[0] != "Alta" {
		t.Errorf("Model 3 Long Range locations = %v, want [Alta]", modelThree.Locations)
	}

	// No visible-and-available provider means unavailable
	if rows[2].Available {
		t.Error("Model 3 Performance should be unavailable")
	}

	// No providers at all yields zero price
	if rows[3].Price != 0 {
		t.Errorf("Leaf price = %v, want 0", rows[3].Price)
	}
}

func TestFlatten_Empty(t *testing.T) {
	if rows := Flatten(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestFilter(t *testing.T) {
	rows := Flatten(testCars())

	tests := []struct {
		name     string
		criteria Criteria
		want     int
	}{
		{
			name:     "no criteria matches everything",
			criteria: Criteria{},
			want:     4,
		},
		{
			name:     "by make case-insensitive",
			criteria: Criteria{Make: "tesla"},
			want:     2,
		},
		{
			name:     "by fuel type",
			criteria: Criteria{FuelType: "Diesel"},
			want:     1,
		},
		{
			name:     "by transmission",
			criteria: Criteria{Transmission: "Automatic"},
			want:     3,
		},
		{
			name:     "by max price excludes priceless rows above it",
			criteria: Criteria{MaxPrice: 600},
			want:     2, // Golf (550) and Leaf (0)
		},
		{
			name:     "by location",
			criteria: Criteria{Location: "alta"},
			want:     2,
		},
		{
			name:     "available only",
			criteria: Criteria{AvailableOnly: true},
			want:     2,
		},
		{
			name:     "min seats",
			criteria: Criteria{MinSeats: 7},
			want:     0,
		},
		{
			name:     "combined",
			criteria: Criteria{Make: "Tesla", AvailableOnly: true},
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(rows, tt.criteria)
			if len(got) != tt.want {
				t.Errorf("Filter returned %d rows, want %d", len(got), tt.want)
			}
		})
	}
}
