// Package orders defines the order-line dataset the analytics pipeline
// consumes, plus CSV and Parquet readers for loading it.
package orders

import (
	"fmt"
	"strings"
	"time"
)

// Record is a single order line: one row per item per order. Several rows
// may share an OrderID. A zero time means the timestamp is null/unknown.
type Record struct {
	OrderID string

	CustomerID    string
	CustomerCity  string
	CustomerState string

	SellerID    string
	SellerCity  string
	SellerState string

	ProductID       string
	ProductCategory string

	// ReviewScore is the order's review score (1-5), repeated per row.
	ReviewScore int

	PurchasedAt time.Time
	ApprovedAt  time.Time

	// Price is the item price for this row, non-negative.
	Price float64
}

// Dataset is an immutable snapshot of order lines. Methods never mutate
// the receiver; filters return newly allocated slices.
type Dataset []Record

// FilterApprovedBetween returns the records whose approval timestamp falls
// within [start, end], inclusive at day granularity. Records with a null
// approval timestamp are excluded. An inverted range (start after end)
// yields an empty dataset, not an error. Row order is preserved.
func (ds Dataset) FilterApprovedBetween(start, end time.Time) Dataset {
	startDay := DateOf(start)
	endDay := DateOf(end)

	out := make(Dataset, 0, len(ds))
	for _, rec := range ds {
		if rec.ApprovedAt.IsZero() {
			continue
		}
		day := DateOf(rec.ApprovedAt)
		if day.Before(startDay) || day.After(endDay) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ApprovedSpan returns the minimum and maximum approval timestamps in the
// dataset. ok is false when no record carries an approval timestamp.
func (ds Dataset) ApprovedSpan() (min, max time.Time, ok bool) {
	return ds.span(func(r Record) time.Time { return r.ApprovedAt })
}

// PurchaseSpan returns the minimum and maximum purchase timestamps in the
// dataset. ok is false when no record carries a purchase timestamp.
func (ds Dataset) PurchaseSpan() (min, max time.Time, ok bool) {
	return ds.span(func(r Record) time.Time { return r.PurchasedAt })
}

func (ds Dataset) span(ts func(Record) time.Time) (min, max time.Time, ok bool) {
	for _, rec := range ds {
		t := ts(rec)
		if t.IsZero() {
			continue
		}
		if !ok {
			min, max, ok = t, t, true
			continue
		}
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	return min, max, ok
}

// DateOf truncates a timestamp to its calendar day in the timestamp's
// location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SchemaError reports required columns missing from an input file. It is
// fatal: the pipeline does not substitute defaults for structural fields.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input schema missing required columns: %s", strings.Join(e.Missing, ", "))
}
