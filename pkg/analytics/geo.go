package analytics

import (
	"sort"

	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
)

// RegionKey selects the geographic grouping column.
type RegionKey int

const (
	RegionCity RegionKey = iota
	RegionState
)

func (k RegionKey) String() string {
	switch k {
	case RegionCity:
		return "city"
	case RegionState:
		return "state"
	default:
		return "unknown"
	}
}

// RegionCount is a region (city or state) with a distinct-entity count.
type RegionCount struct {
	Region string
	Count  int
}

// CustomersByRegion counts distinct customers per region. There is no
// minimum-count floor: a region with a single customer is included.
func CustomersByRegion(ds orders.Dataset, key RegionKey) []RegionCount {
	counter := make(distinctCounter)
	for _, rec := range ds {
		counter.add(regionOf(rec.CustomerCity, rec.CustomerState, key), rec.CustomerID)
	}
	return regionCounts(counter)
}

// SellersByRegion counts distinct sellers per region.
func SellersByRegion(ds orders.Dataset, key RegionKey) []RegionCount {
	counter := make(distinctCounter)
	for _, rec := range ds {
		counter.add(regionOf(rec.SellerCity, rec.SellerState, key), rec.SellerID)
	}
	return regionCounts(counter)
}

func regionOf(city, state string, key RegionKey) string {
	if key == RegionState {
		return state
	}
	return city
}

func regionCounts(counter distinctCounter) []RegionCount {
	out := make([]RegionCount, 0, len(counter))
	for region, ids := range counter {
		out = append(out, RegionCount{Region: region, Count: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Region < out[j].Region
	})
	return out
}
