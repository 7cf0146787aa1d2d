package kernel

import (
	"errors"
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0

	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position with a postal address.
// GeoPoint is an immutable value object; the zero value is invalid and fails
// validation, so instances must come from the constructor.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(48.8566, 2.3522, "1 Rue de Rivoli, Paris")
//	if err != nil {
//	    // Handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat     float64
	lon     float64
	address string
	guard   guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates and address.
// Latitude must be within [-90, 90], longitude within [-180, 180], and the
// address must be non-empty.
func NewGeoPoint(lat, lon float64, address string) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLat(lat), p.setLon(lon), p.setAddress(address)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks if the GeoPoint was properly constructed via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// Address returns the free-form postal address.
func (p GeoPoint) Address() string {
	return p.address
}

// String returns a human-readable representation of the point.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.5f,%.5f)", p.lat, p.lon)
}

// IsEqual compares two points by coordinates only; the address is descriptive
// and does not participate in equality.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lon == other.lon, nil
}

// DistanceKm calculates the great-circle distance to another point in
// kilometers using the haversine formula.
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := radians(other.lat - p.lat)
	dLon := radians(other.lon - p.lon)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(p.lat))*math.Cos(radians(other.lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// DistanceToSegmentKm calculates the shortest distance in kilometers from the
// point to the segment between a and b. The segment is projected onto a local
// equirectangular plane, which is accurate enough at delivery-route scale.
func (p GeoPoint) DistanceToSegmentKm(a, b GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), a.Validate(), b.Validate()); err != nil {
		return 0, err
	}

	// Project onto a plane centered at the query point.
	refLat := radians(p.lat)
	ax := radians(a.lon-p.lon) * math.Cos(refLat) * earthRadiusKm
	ay := radians(a.lat-p.lat) * earthRadiusKm
	bx := radians(b.lon-p.lon) * math.Cos(refLat) * earthRadiusKm
	by := radians(b.lat-p.lat) * earthRadiusKm

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return math.Hypot(ax, ay), nil
	}

	// Clamp the projection of the point onto the segment to [0, 1].
	t := -(ax*dx + ay*dy) / segLenSq
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(ax+t*dx, ay+t*dy), nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// setLat sets the latitude with validation.
// Private setters use pointer receivers to support self-encapsulated
// validation during construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	p.lat = lat
	return nil
}

// setLon sets the longitude with validation.
func (p *GeoPoint) setLon(lon float64) error {
	if lon < LongitudeMin || lon > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lon", lon, LongitudeMin, LongitudeMax)
	}

	p.lon = lon
	return nil
}

// setAddress sets the postal address with validation.
func (p *GeoPoint) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	p.address = address
	return nil
}
