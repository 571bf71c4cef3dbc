package analytics

import (
	"sort"

	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
)

// CategoryCount is a product category with its distinct-order count.
type CategoryCount struct {
	Category string
	Orders   int
}

// TopCategories ranks product categories by the number of distinct orders
// containing them, best sellers first. Ties are broken by category name
// ascending so the output is deterministic. Categories absent from the
// dataset are omitted rather than reported with a zero count.
func TopCategories(ds orders.Dataset) []CategoryCount {
	out := categoryCounts(ds)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// BottomCategories is the worst-sellers view: the same table as
// TopCategories sorted ascending by count, category name ascending on
// ties. No separate computation is performed.
func BottomCategories(ds orders.Dataset) []CategoryCount {
	out := categoryCounts(ds)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders < out[j].Orders
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func categoryCounts(ds orders.Dataset) []CategoryCount {
	counter := make(distinctCounter)
	for _, rec := range ds {
		counter.add(rec.ProductCategory, rec.OrderID)
	}

	out := make([]CategoryCount, 0, len(counter))
	for category, ids := range counter {
		out = append(out, CategoryCount{Category: category, Orders: len(ids)})
	}
	return out
}
