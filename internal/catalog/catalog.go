// Package catalog shapes the car list for display: one row per
// configuration, filtered client-side the way the cars page does it.
package catalog

import (
	"strings"

	"github.com/rentd-dev/rentd/internal/models"
)

// Row is a single displayable catalog entry: a car paired with one of
// its configurations. Price is the cheapest visible provider offer,
// zero when no provider is visible.
type Row struct {
	CarID            int64
	Make             string
	Model            string
	Year             int
	Configuration    string
	FuelType         string
	TransmissionType string
	NumberOfSeats    int
	Price            float64
	Locations        []string
	Available        bool
}

// Flatten expands each car into one row per configuration.
func Flatten(cars []models.Car) []Row {
	var rows []Row
	for _, car := range cars {
		for _, cfg := range car.Configurations {
			row := Row{
				CarID:            car.ID,
				Make:             car.Make,
				Model:            car.Model,
				Year:             car.Year,
				Configuration:    cfg.Name,
				FuelType:         cfg.FuelType,
				TransmissionType: cfg.TransmissionType,
				NumberOfSeats:    cfg.NumberOfSeats,
			}
			for _, p := range cfg.Providers {
				if !p.Visible {
					continue
				}
				if row.Price == 0 || p.Price < row.Price {
					row.Price = p.Price
				}
				if p.Location != "" {
					row.Locations = append(row.Locations, p.Location)
				}
				if p.Available {
					row.Available = true
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Criteria describes a catalog filter. Zero-valued fields match
// everything.
type Criteria struct {
	Make          string
	FuelType      string
	Transmission  string
	MinSeats      int
	MaxPrice      float64
	Location      string
	AvailableOnly bool
}

// Filter returns the rows matching all set criteria. String matches
// are case-insensitive.
func Filter(rows []Row, c Criteria) []Row {
	var out []Row
	for _, row := range rows {
		if !matches(row, c) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func matches(row Row, c Criteria) bool {
	if c.Make != "" && !strings.EqualFold(row.Make, c.Make) {
		return false
	}
	if c.FuelType != "" && !strings.EqualFold(row.FuelType, c.FuelType) {
		return false
	}
	if c.Transmission != "" && !strings.EqualFold(row.TransmissionType, c.Transmission) {
		return false
	}
	if c.MinSeats > 0 && row.NumberOfSeats < c.MinSeats {
		return false
	}
	if c.MaxPrice > 0 && row.Price > c.MaxPrice {
		return false
	}
	if c.Location != "" && !hasLocation(row, c.Location) {
		return false
	}
	if c.AvailableOnly && !row.Available {
		return false
	}
	return true
}

func hasLocation(row Row, location string) bool {
	for _, l := range row.Locations {
		if strings.EqualFold(l, location) {
			return true
		}
	}
	return false
}
