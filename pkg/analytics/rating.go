package analytics

import (
	"sort"

	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
)

// Review score extremes the rating tables are computed for.
const (
	ScoreLowest  = 1
	ScoreHighest = 5
)

// CategoryProducts is a product category with a distinct-product count.
type CategoryProducts struct {
	Category string
	Products int
}

// RatingExtremes counts, per category, the distinct products whose rows
// carry exactly the given review score. The 5-star and 1-star tables are
// independent, non-exclusive aggregations: a product rated both ways in
// the window appears in both. An empty result is a valid outcome, not an
// error.
func RatingExtremes(ds orders.Dataset, score int) []CategoryProducts {
	counter := make(distinctCounter)
	for _, rec := range ds {
		if rec.ReviewScore != score {
			continue
		}
		counter.add(rec.ProductCategory, rec.ProductID)
	}

	out := make([]CategoryProducts, 0, len(counter))
	for category, ids := range counter {
		out = append(out, CategoryProducts{Category: category, Products: len(ids)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Products != out[j].Products {
			return out[i].Products > out[j].Products
		}
		return out[i].Category < out[j].Category
	})
	return out
}
