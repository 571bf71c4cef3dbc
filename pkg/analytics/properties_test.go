package analytics

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
)

// propertyDataset spreads orders across January so windows can be
// narrowed meaningfully. Every row is approved.
func propertyDataset() orders.Dataset {
	var ds orders.Dataset
	for i := 1; i <= 20; i++ {
		dayStr := fmt.Sprintf("2024-01-%02d", i)
		ds = append(ds, orders.Record{
			OrderID:         fmt.Sprintf("O%d", i),
			CustomerID:      fmt.Sprintf("C%d", i%7),
			CustomerCity:    fmt.Sprintf("city%d", i%3),
			CustomerState:   fmt.Sprintf("S%d", i%2),
			SellerID:        fmt.Sprintf("S%d", i%5),
			SellerCity:      fmt.Sprintf("scity%d", i%4),
			SellerState:     fmt.Sprintf("SS%d", i%2),
			ProductID:       fmt.Sprintf("P%d", i%6),
			ProductCategory: fmt.Sprintf("cat%d", i%4),
			ReviewScore:     1 + i%5,
			PurchasedAt:     ts(dayStr + " 08:00:00"),
			ApprovedAt:      ts(dayStr + " 12:00:00"),
			Price:           float64(i),
		})
	}
	return ds
}

func totalCount(counts []CategoryCount) int {
	n := 0
	for _, c := range counts {
		n += c.Orders
	}
	return n
}

func TestRangeMonotonicity(t *testing.T) {
	ds := propertyDataset()

	wide := ds.FilterApprovedBetween(day("2024-01-01"), day("2024-01-31"))
	narrow := ds.FilterApprovedBetween(day("2024-01-05"), day("2024-01-15"))

	if len(narrow) > len(wide) {
		t.Fatalf("narrowing grew the subset: %d > %d", len(narrow), len(wide))
	}
	if totalCount(TopCategories(narrow)) > totalCount(TopCategories(wide)) {
		t.Error("narrowing increased total category order count")
	}
	if len(ComputeRFM(narrow)) > len(ComputeRFM(wide)) {
		t.Error("narrowing increased distinct customer count")
	}

	narrowSellers := 0
	for _, rc := range SellersByRegion(narrow, RegionState) {
		narrowSellers += rc.Count
	}
	wideSellers := 0
	for _, rc := range SellersByRegion(wide, RegionState) {
		wideSellers += rc.Count
	}
	if narrowSellers > wideSellers {
		t.Error("narrowing increased total seller count")
	}
}

func TestFullRangeEquivalence(t *testing.T) {
	ds := propertyDataset()

	min, max, ok := ds.ApprovedSpan()
	if !ok {
		t.Fatal("no approval span")
	}
	full := ds.FilterApprovedBetween(min, max)

	if got, want := TopCategories(full), TopCategories(ds); !reflect.DeepEqual(got, want) {
		t.Errorf("categories differ between full-range filter and raw dataset:\n%v\n%v", got, want)
	}
	if got, want := CustomersByRegion(full, RegionCity), CustomersByRegion(ds, RegionCity); !reflect.DeepEqual(got, want) {
		t.Errorf("customers by city differ:\n%v\n%v", got, want)
	}
	if got, want := RatingExtremes(full, ScoreHighest), RatingExtremes(ds, ScoreHighest); !reflect.DeepEqual(got, want) {
		t.Errorf("five-star tables differ:\n%v\n%v", got, want)
	}
	if got, want := ComputeRFM(full), ComputeRFM(ds); !reflect.DeepEqual(got, want) {
		t.Errorf("RFM tables differ:\n%v\n%v", got, want)
	}
}

func TestEmptyRangePropagates(t *testing.T) {
	ds := propertyDataset()

	// Inverted range: valid degenerate input, empty everywhere.
	empty := ds.FilterApprovedBetween(day("2024-02-01"), day("2024-01-01"))
	if len(empty) != 0 {
		t.Fatalf("inverted range produced %d rows", len(empty))
	}
	if got := TopCategories(empty); len(got) != 0 {
		t.Errorf("categories = %v", got)
	}
	if got := SellersByRegion(empty, RegionCity); len(got) != 0 {
		t.Errorf("sellers = %v", got)
	}
	if got := RatingExtremes(empty, ScoreLowest); len(got) != 0 {
		t.Errorf("ratings = %v", got)
	}
	rfm := ComputeRFM(empty)
	if len(rfm) != 0 {
		t.Errorf("rfm = %v", rfm)
	}
	if _, ok := SummarizeRFM(rfm); ok {
		t.Error("summary defined for empty RFM table")
	}
}
