package geocoder

import (
	"strings"

	"netivim/entity"
)

const (
	RegionNorth     = "צפון"
	RegionCenter    = "מרכז"
	RegionJerusalem = "ירושלים"
	RegionSouth     = "דרום"
)

// districts maps fragments of Nominatim's Hebrew district names.
var districts = []struct {
	fragment string
	region   string
}{
	{"הצפון", RegionNorth},
	{"חיפה", RegionNorth},
	{"המרכז", RegionCenter},
	{"תל אביב", RegionCenter},
	{"ירושלים", RegionJerusalem},
	{"הדרום", RegionSouth},
}

// DeriveRegion picks the region from the district when Nominatim knows it,
// and from latitude bands otherwise.
func DeriveRegion(loc entity.Location) string {
	for _, d := range districts {
		if loc.State != "" && strings.Contains(loc.State, d.fragment) {
			return d.region
		}
	}
	return regionByCoordinate(loc.Lat, loc.Lng)
}

func regionByCoordinate(lat, lng float64) string {
	switch {
	case lat >= 32.4:
		return RegionNorth
	case lat < 31.3:
		return RegionSouth
	case lat >= 31.6 && lat < 31.95 && lng >= 35.05:
		return RegionJerusalem
	}
	return RegionCenter
}

// StaticRegion always answers with the same label.
type StaticRegion string

func (s StaticRegion) Region(entity.Location) string {
	return string(s)
}

// DerivedRegion resolves the region from the geocoded location.
type DerivedRegion struct{}

func (DerivedRegion) Region(loc entity.Location) string {
	return DeriveRegion(loc)
}
