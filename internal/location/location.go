// Package location turns coordinates and reverse-geocoded placemarks into
// the display string stored on a meal.
package location

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/mealtrack/internal/errors"
)

const pin = "📍 "

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Placemark holds the address parts a geocoder returns, most specific first.
type Placemark struct {
	FeatureName  string
	Thoroughfare string
	Locality     string
	AdminArea    string
}

func (p Placemark) parts() []string {
	var out []string
	for _, s := range []string{p.FeatureName, p.Thoroughfare, p.Locality, p.AdminArea} {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Format prefers up to three placemark parts and falls back to raw
// coordinates when there is no usable placemark.
func Format(c Coordinates, p *Placemark) string {
	if p != nil {
		if parts := p.parts(); len(parts) > 0 {
			if len(parts) > 3 {
				parts = parts[:3]
			}
			return pin + strings.Join(parts, ", ")
		}
	}
	return fmt.Sprintf("%s%.6f, %.6f", pin, c.Latitude, c.Longitude)
}

func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return errors.NewValidationError("latitude", "%v is outside [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return errors.NewValidationError("longitude", "%v is outside [-180, 180]", c.Longitude)
	}
	return nil
}

// ParseCoordinates reads "lat,lon".
func ParseCoordinates(s string) (Coordinates, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinates{}, errors.NewValidationError("location", "expected \"lat,lon\", got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coordinates{}, errors.NewValidationError("latitude", "%q is not a number", strings.TrimSpace(latStr))
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Coordinates{}, errors.NewValidationError("longitude", "%q is not a number", strings.TrimSpace(lonStr))
	}
	c := Coordinates{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}
