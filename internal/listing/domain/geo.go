package domain

import "math"

// earthRadiusMiles is the mean Earth radius used for great-circle distances.
const earthRadiusMiles = 3959.0

// GeoFilter restricts search results to listings within Radius miles of a
// center point. Construct it with NewGeoFilter so that a partially supplied
// center never silently defaults to zero.
type GeoFilter struct {
	Latitude  float64
	Longitude float64
	Radius    float64 // miles
}

// NewGeoFilter builds a geo filter from optional inputs. It returns nil when
// any of latitude, longitude or radius is absent, which disables geofiltering.
func NewGeoFilter(lat, lon, radius *float64) *GeoFilter {
	if lat == nil || lon == nil || radius == nil {
		return nil
	}
	return &GeoFilter{Latitude: *lat, Longitude: *lon, Radius: *radius}
}

// Distance returns the great-circle distance in miles between two points
// given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const rad = math.Pi / 180
	arg := math.Sin(lat1*rad)*math.Sin(lat2*rad) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Cos((lon2-lon1)*rad)
	// Rounding can push the argument just outside acos's domain for
	// identical or antipodal points.
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return earthRadiusMiles * math.Acos(arg)
}

// Within reports whether the given point lies inside the filter radius.
func (g *GeoFilter) Within(lat, lon float64) bool {
	return g.DistanceTo(lat, lon) <= g.Radius
}

// DistanceTo returns the distance in miles from the filter center to the point.
func (g *GeoFilter) DistanceTo(lat, lon float64) float64 {
	return Distance(g.Latitude, g.Longitude, lat, lon)
}
