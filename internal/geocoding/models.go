// Package geocoding resolves map positions through Nominatim and turns its
// answers into the address fields of the registration and profile forms.
package geocoding

import (
	"strconv"
	"strings"

	dErrors "jurify/pkg/domain-errors"
)

const DefaultCountry = "India"

// GeoPosition is a map selection. Address is nil until a reverse lookup
// succeeds.
type GeoPosition struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Address   *Address `json:"address,omitempty"`
}

// Address is the form-ready address extracted from a Nominatim place.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Country      string `json:"country"`
	FullAddress  string `json:"fullAddress,omitempty"`
}

// Place is one Nominatim search or reverse result.
type Place struct {
	PlaceID     int64        `json:"place_id"`
	DisplayName string       `json:"display_name"`
	Lat         string       `json:"lat"`
	Lon         string       `json:"lon"`
	Address     PlaceAddress `json:"address"`
}

type PlaceAddress struct {
	Road     string `json:"road,omitempty"`
	Suburb   string `json:"suburb,omitempty"`
	Village  string `json:"village,omitempty"`
	Town     string `json:"town,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
	Country  string `json:"country,omitempty"`
}

func (a PlaceAddress) empty() bool {
	return a == PlaceAddress{}
}

// SelectResult is what choosing a search result does to the picker: the query
// becomes the display name and the position is the result's coordinates.
func SelectResult(p Place) (string, GeoPosition, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
	if err != nil {
		return "", GeoPosition{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(p.Lon), 64)
	if err != nil {
		return "", GeoPosition{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid longitude")
	}
	return p.DisplayName, GeoPosition{Latitude: lat, Longitude: lon}, nil
}

// ExtractAddress maps a place onto the form address fields. City falls back
// through town, village and suburb; the country defaults to India.
func ExtractAddress(p Place) Address {
	line1, _, _ := strings.Cut(p.DisplayName, ",")
	a := p.Address
	return Address{
		AddressLine1: strings.TrimSpace(line1),
		City:         firstNonEmpty(a.City, a.Town, a.Village, a.Suburb),
		State:        a.State,
		Pincode:      a.Postcode,
		Country:      firstNonEmpty(a.Country, DefaultCountry),
		FullAddress:  p.DisplayName,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// ValidCoordinates reports whether lat/lon are on the globe.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
