package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rentd-dev/rentd/internal/catalog"
	"github.com/rentd-dev/rentd/internal/models"
)

// mockCarsClient simulates the API client for the cars commands
type mockCarsClient struct {
	cars       []models.Car
	added      []models.Car
	deleted    []int64
	nextID     int64
	shouldFail bool
}

func (m *mockCarsClient) ListCars() ([]models.Car, error) {
	if m.shouldFail {
		return nil, errors.New("request failed (status 500): internal server error")
	}
	return m.cars, nil
}

func (m *mockCarsClient) GetCar(id int64) (*models.Car, error) {
	for i := range m.cars {
		if m.cars[i].ID == id {
			return &m.cars[i], nil
		}
	}
	return nil, errors.New("request failed (status 404): not found")
}

func (m *mockCarsClient) AddCar(car models.Car) (int64, error) {
	if m.shouldFail {
		return 0, errors.New("request failed (status 403): forbidden")
	}
	m.added = append(m.added, car)
	m.nextID++
	return m.nextID, nil
}

func (m *mockCarsClient) UpdateCar(id int64, car models.Car) error {
	return nil
}

func (m *mockCarsClient) DeleteCar(id int64) error {
	if m.shouldFail {
		return errors.New("request failed (status 404): not found")
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func testCatalog() []models.Car {
	return []models.Car{
		{
			ID: 1, Make: "Volkswagen", Model: "Golf", Year: 2007,
			Configurations: []models.Configuration{
				{
					Name: "Base", FuelType: "Diesel", TransmissionType: "Manual", NumberOfSeats: 5,
					Providers: []models.Provider{
						{Name: "Miller Bil", Price: 600, Location: "Ålesund", Available: true, Visible: true},
					},
				},
			},
		},
		{
			ID: 2, Make: "Tesla", Model: "Model 3", Year: 2019,
			Configurations: []models.Configuration{
				{
					Name: "Long Range", FuelType: "Electric", TransmissionType: "Automatic", NumberOfSeats: 5,
					Providers: []models.Provider{
						{Name: "Biggernes Tesla", Price: 700, Location: "Alta", Available: true, Visible: true},
					},
				},
			},
		},
	}
}

func TestCarsList_RendersTable(t *testing.T) {
	mock := &mockCarsClient{cars: testCatalog()}
	var output bytes.Buffer

	if err := runCarsList(mock, &output, catalog.Criteria{}); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	got := output.String()
	for _, want := range []string{"MAKE", "Golf", "Model 3", "600", "700"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestCarsList_AppliesFilter(t *testing.T) {
	mock := &mockCarsClient{cars: testCatalog()}
	var output bytes.Buffer

	err := runCarsList(mock, &output, catalog.Criteria{FuelType: "Electric"})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	got := output.String()
	if strings.Contains(got, "Golf") {
		t.Errorf("diesel car should have been filtered out, got:\n%s", got)
	}
	if !strings.Contains(got, "Model 3") {
		t.Errorf("electric car missing from output:\n%s", got)
	}
}

func TestCarsList_Empty(t *testing.T) {
	mock := &mockCarsClient{}
	var output bytes.Buffer

	if err := runCarsList(mock, &output, catalog.Criteria{}); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if !strings.Contains(output.String(), "No cars found") {
		t.Errorf("expected 'No cars found' message, got: %s", output.String())
	}
}

func TestCarsList_Error(t *testing.T) {
	mock := &mockCarsClient{shouldFail: true}
	var output bytes.Buffer

	if err := runCarsList(mock, &output, catalog.Criteria{}); err == nil {
		t.Error("expected error from failing client, got nil")
	}
}

func TestCarsGet(t *testing.T) {
	mock := &mockCarsClient{cars: testCatalog()}
	var output bytes.Buffer

	if err := runCarsGet(mock, &output, 1); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	got := output.String()
	for _, want := range []string{"Volkswagen Golf (2007)", "Miller Bil", "Ålesund"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestCarsDelete(t *testing.T) {
	mock := &mockCarsClient{cars: testCatalog()}
	var output bytes.Buffer

	if err := runCarsDelete(mock, &output, 2); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if len(mock.deleted) != 1 || mock.deleted[0] != 2 {
		t.Errorf("expected car 2 to be deleted, got %v", mock.deleted)
	}
}

func TestCarsImport(t *testing.T) {
	catalogYAML := `cars:
  - make: Volkswagen
    model: Polo
    year: 2012
    configurations:
      - name: Base
        fuelType: Petrol
        transmissionType: Manual
        numberOfSeats: 5
  - make: Peugeot
    model: "307"
    year: 2008
`
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatal(err)
	}

	mock := &mockCarsClient{}
	var output bytes.Buffer

	if err := runCarsImport(mock, &output, path); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	if len(mock.added) != 2 {
		t.Fatalf("expected 2 imported cars, got %d", len(mock.added))
	}
	if mock.added[0].Make != "Volkswagen" || mock.added[0].Configurations[0].FuelType != "Petrol" {
		t.Errorf("first imported car malformed: %+v", mock.added[0])
	}
	if !strings.Contains(output.String(), "Imported 2 cars") {
		t.Errorf("expected summary line, got: %s", output.String())
	}
}

func TestCarsImport_EmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "catalog.yaml")
	if err := os.WriteFile(path, []byte("cars: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	mock := &mockCarsClient{}
	var output bytes.Buffer

	if err := runCarsImport(mock, &output, path); err == nil {
		t.Error("expected error for empty catalog, got nil")
	}
}

func TestCarsImport_StopsOnFirstFailure(t *testing.T) {
	catalogYAML := `cars:
  - make: Volkswagen
    model: Polo
    year: 2012
`
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatal(err)
	}

	mock := &mockCarsClient{shouldFail: true}
	var output bytes.Buffer

	if err := runCarsImport(mock, &output, path); err == nil {
		t.Error("expected error when the client rejects the import, got nil")
	}
}
