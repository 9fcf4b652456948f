package stats

import "time"

// RegionStat is the number of places registered under one area code.
// Count comes straight from the upstream totalCount for that filter,
// not from a local aggregation.
type RegionStat struct {
	AreaCode string
	AreaName string
	Count    int
}

// TypeStat is the number of places registered under one content type.
type TypeStat struct {
	ContentTypeID string
	TypeName      string
	Count         int
}

// Summary is the headline view over both breakdowns. TotalCount is the
// sum of per-region counts; the upstream schema keys each place to a
// single area code, so no place is counted twice.
type Summary struct {
	TotalCount  int
	TopRegions  []RegionStat
	TopTypes    []TypeStat
	LastUpdated time.Time
}
