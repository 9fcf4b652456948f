package tourapi

import (
	"math"
	"testing"
)

func TestConvertKATECToWGS84(t *testing.T) {
	lng, lat := ConvertKATECToWGS84("1275000000", "375000000")
	if lng != 127.5 || lat != 37.5 {
		t.Fatalf("ConvertKATECToWGS84 = (%v, %v), want (127.5, 37.5)", lng, lat)
	}

	// String and numeric input must agree.
	nlng, nlat := ConvertKATECToWGS84Float(1275000000, 375000000)
	if nlng != lng || nlat != lat {
		t.Fatalf("float variant = (%v, %v), string variant = (%v, %v)", nlng, nlat, lng, lat)
	}
}

func TestConvertKATECToWGS84Fractional(t *testing.T) {
	lng, lat := ConvertKATECToWGS84("1269780000", "375665000")
	if math.Abs(lng-126.978) > 1e-9 || math.Abs(lat-37.5665) > 1e-9 {
		t.Fatalf("got (%v, %v), want (126.978, 37.5665)", lng, lat)
	}
}

func TestConvertKATECToWGS84Unparseable(t *testing.T) {
	lng, lat := ConvertKATECToWGS84("not-a-number", "")
	if !math.IsNaN(lng) || !math.IsNaN(lat) {
		t.Fatalf("expected NaN for unparseable input, got (%v, %v)", lng, lat)
	}
}
