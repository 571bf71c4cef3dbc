package analytics

import (
	"reflect"
	"testing"

	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
)

func TestRatingExtremes(t *testing.T) {
	ds := orders.Dataset{
		{OrderID: "1", ProductID: "P1", ProductCategory: "toys", ReviewScore: 5},
		{OrderID: "2", ProductID: "P1", ProductCategory: "toys", ReviewScore: 5},
		{OrderID: "3", ProductID: "P2", ProductCategory: "toys", ReviewScore: 5},
		{OrderID: "4", ProductID: "P3", ProductCategory: "books", ReviewScore: 5},
		{OrderID: "5", ProductID: "P4", ProductCategory: "books", ReviewScore: 1},
		{OrderID: "6", ProductID: "P5", ProductCategory: "books", ReviewScore: 3},
	}

	five := RatingExtremes(ds, ScoreHighest)
	// P1 is rated 5 twice but is one distinct product.
	wantFive := []CategoryProducts{{"toys", 2}, {"books", 1}}
	if !reflect.DeepEqual(five, wantFive) {
		t.Errorf("RatingExtremes(5) = %v, want %v", five, wantFive)
	}

	one := RatingExtremes(ds, ScoreLowest)
	wantOne := []CategoryProducts{{"books", 1}}
	if !reflect.DeepEqual(one, wantOne) {
		t.Errorf("RatingExtremes(1) = %v, want %v", one, wantOne)
	}
}

func TestRatingExtremesIndependent(t *testing.T) {
	// A product rated both 1 and 5 in the window appears in both tables.
	ds := orders.Dataset{
		{OrderID: "1", ProductID: "P1", ProductCategory: "toys", ReviewScore: 5},
		{OrderID: "2", ProductID: "P1", ProductCategory: "toys", ReviewScore: 1},
	}
	five := RatingExtremes(ds, ScoreHighest)
	one := RatingExtremes(ds, ScoreLowest)
	if len(five) != 1 || five[0].Products != 1 {
		t.Errorf("five-star table = %v", five)
	}
	if len(one) != 1 || one[0].Products != 1 {
		t.Errorf("one-star table = %v", one)
	}
}

func TestRatingExtremesNoMatches(t *testing.T) {
	ds := orders.Dataset{
		{OrderID: "1", ProductID: "P1", ProductCategory: "toys", ReviewScore: 3},
	}
	if got := RatingExtremes(ds, ScoreHighest); len(got) != 0 {
		t.Errorf("RatingExtremes with no matches = %v, want empty", got)
	}
}
