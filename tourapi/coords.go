package tourapi

import (
	"math"
	"strconv"
)

// coordScale is the divisor for the upstream's integer-scaled KATEC
// coordinate encoding.
const coordScale = 10_000_000

// ConvertKATECToWGS84 converts the upstream's integer-scaled planar
// coordinates to WGS84 longitude/latitude.
//
// The API delivers mapx/mapy as strings ("1275000000"); unparseable
// input yields NaN rather than an error, callers that care should check
// with math.IsNaN.
func ConvertKATECToWGS84(mapx, mapy string) (lng, lat float64) {
	return parseCoord(mapx), parseCoord(mapy)
}

// ConvertKATECToWGS84Float is the numeric variant of
// ConvertKATECToWGS84 for callers that already hold parsed values.
func ConvertKATECToWGS84Float(mapx, mapy float64) (lng, lat float64) {
	return mapx / coordScale, mapy / coordScale
}

func parseCoord(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v / coordScale
}
