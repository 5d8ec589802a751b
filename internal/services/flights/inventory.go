package flights

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/berryair/concierge/pkg/domain"
)

const inventoryDateFormat = "2006-01-02"

type inventoryFile struct {
	Flights []flightRecord `yaml:"flights"`
}

type flightRecord struct {
	ID                  int     `yaml:"id"`
	OriginBase          string  `yaml:"origin_base"`
	OriginLocation      string  `yaml:"origin_location"`
	OriginCode          string  `yaml:"origin_code"`
	DestinationBase     string  `yaml:"destination_base"`
	DestinationLocation string  `yaml:"destination_location"`
	DestinationCode     string  `yaml:"destination_code"`
	DepartureDate       string  `yaml:"departure_date"`
	DepartureTime       string  `yaml:"departure_time"`
	Status              string  `yaml:"status"`
	BasePrice           float64 `yaml:"base_price"`
}

// LoadInventoryFile reads a YAML flight inventory from disk.
func LoadInventoryFile(path string) ([]domain.FlightInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	return ParseInventory(raw)
}

// ParseInventory decodes a YAML flight inventory.
func ParseInventory(raw []byte) ([]domain.FlightInfo, error) {
	var file inventoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}

	flights := make([]domain.FlightInfo, 0, len(file.Flights))
	for _, rec := range file.Flights {
		date, err := time.Parse(inventoryDateFormat, rec.DepartureDate)
		if err != nil {
			return nil, fmt.Errorf("flight %d: invalid departure date %q", rec.ID, rec.DepartureDate)
		}
		flights = append(flights, domain.FlightInfo{
			ID:                  rec.ID,
			OriginBase:          rec.OriginBase,
			OriginLocation:      rec.OriginLocation,
			OriginCode:          rec.OriginCode,
			DestinationBase:     rec.DestinationBase,
			DestinationLocation: rec.DestinationLocation,
			DestinationCode:     rec.DestinationCode,
			DepartureDate:       date,
			DepartureTime:       rec.DepartureTime,
			Status:              rec.Status,
			BasePrice:           rec.BasePrice,
		})
	}
	return flights, nil
}

type route struct {
	base, location, code string
}

var demoRoutes = []route{
	{"Berry Airlines London", "London", "LHR"},
	{"Berry Airlines Paris", "Paris", "CDG"},
	{"Berry Airlines Amsterdam", "Amsterdam", "AMS"},
	{"Berry Airlines Berlin", "Berlin", "BER"},
	{"Berry Airlines Madrid", "Madrid", "MAD"},
}

// DemoInventory generates a deterministic schedule covering every pair of
// demo cities for the given number of days starting at from. It backs the
// chat command when no inventory file is supplied.
func DemoInventory(from time.Time, days int) []domain.FlightInfo {
	var flights []domain.FlightInfo
	id := 1
	for day := 0; day < days; day++ {
		date := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		for i, origin := range demoRoutes {
			for j, dest := range demoRoutes {
				if i == j {
					continue
				}
				hour := 6 + (id+day)%14
				price := 80 + float64((i*7+j*13+day*3)%120)
				flights = append(flights, domain.FlightInfo{
					ID:                  id,
					OriginBase:          origin.base,
					OriginLocation:      origin.location,
					OriginCode:          origin.code,
					DestinationBase:     dest.base,
					DestinationLocation: dest.location,
					DestinationCode:     dest.code,
					DepartureDate:       date,
					DepartureTime:       fmt.Sprintf("%02d:%02d", hour, (id*25)%60),
					Status:              "SCHEDULED",
					BasePrice:           math.Round(price*100) / 100,
				})
				id++
			}
		}
	}
	return flights
}
