package analytics

import (
	"sort"
	"time"

	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
)

// RFMRecord is the recency/frequency/monetary rollup for one customer.
type RFMRecord struct {
	CustomerID string

	// RecencyDays is the whole number of days between the customer's last
	// purchase date and the dataset-wide reference date (the maximum
	// purchase date in the subset). Never negative.
	RecencyDays int

	// Frequency is the customer's distinct order count. A multi-item
	// order counts once.
	Frequency int

	// Monetary is the sum of item prices across all of the customer's
	// rows.
	Monetary float64
}

// rfmAccum collects the per-customer measures during the single pass.
type rfmAccum struct {
	lastPurchase time.Time
	orderIDs     map[string]struct{}
	monetary     float64
}

// ComputeRFM computes one RFMRecord per distinct customer in the subset.
// Recency is anchored on a single global reference date: the maximum
// purchase date across the whole subset, not a per-customer value.
//
// A customer present only in rows with a null purchase timestamp has no
// recency anchor and is excluded. An empty subset yields an empty result;
// the reference date is then undefined, so callers must not derive
// aggregate statistics from it (see SummarizeRFM).
func ComputeRFM(ds orders.Dataset) []RFMRecord {
	var reference time.Time
	accums := make(map[string]*rfmAccum)

	for _, rec := range ds {
		if rec.CustomerID == "" {
			continue
		}
		acc, ok := accums[rec.CustomerID]
		if !ok {
			acc = &rfmAccum{orderIDs: make(map[string]struct{})}
			accums[rec.CustomerID] = acc
		}
		if rec.OrderID != "" {
			acc.orderIDs[rec.OrderID] = struct{}{}
		}
		acc.monetary += rec.Price

		if rec.PurchasedAt.IsZero() {
			continue
		}
		day := orders.DateOf(rec.PurchasedAt)
		if day.After(acc.lastPurchase) {
			acc.lastPurchase = day
		}
		if day.After(reference) {
			reference = day
		}
	}

	out := make([]RFMRecord, 0, len(accums))
	for customerID, acc := range accums {
		if acc.lastPurchase.IsZero() {
			continue
		}
		out = append(out, RFMRecord{
			CustomerID:  customerID,
			RecencyDays: int(reference.Sub(acc.lastPurchase) / (24 * time.Hour)),
			Frequency:   len(acc.orderIDs),
			Monetary:    acc.monetary,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

// RFMSummary holds the mean of each RFM measure over a customer set.
type RFMSummary struct {
	Customers     int
	MeanRecency   float64
	MeanFrequency float64
	MeanMonetary  float64
}

// SummarizeRFM computes mean recency, frequency, and monetary value.
// ok is false when records is empty: the statistics are undefined and
// there is no division to perform.
func SummarizeRFM(records []RFMRecord) (RFMSummary, bool) {
	if len(records) == 0 {
		return RFMSummary{}, false
	}

	var s RFMSummary
	s.Customers = len(records)
	for _, r := range records {
		s.MeanRecency += float64(r.RecencyDays)
		s.MeanFrequency += float64(r.Frequency)
		s.MeanMonetary += r.Monetary
	}
	n := float64(s.Customers)
	s.MeanRecency /= n
	s.MeanFrequency /= n
	s.MeanMonetary /= n
	return s, true
}

// TopByRecency returns up to n customers with the smallest recency (most
// recently active first). Ties are broken by customer id ascending.
func TopByRecency(records []RFMRecord, n int) []RFMRecord {
	return topN(records, n, func(a, b RFMRecord) bool {
		if a.RecencyDays != b.RecencyDays {
			return a.RecencyDays < b.RecencyDays
		}
		return a.CustomerID < b.CustomerID
	})
}

// TopByFrequency returns up to n customers with the highest distinct
// order counts.
func TopByFrequency(records []RFMRecord, n int) []RFMRecord {
	return topN(records, n, func(a, b RFMRecord) bool {
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		return a.CustomerID < b.CustomerID
	})
}

// TopByMonetary returns up to n customers with the highest total spend.
func TopByMonetary(records []RFMRecord, n int) []RFMRecord {
	return topN(records, n, func(a, b RFMRecord) bool {
		if a.Monetary != b.Monetary {
			return a.Monetary > b.Monetary
		}
		return a.CustomerID < b.CustomerID
	})
}

func topN(records []RFMRecord, n int, less func(a, b RFMRecord) bool) []RFMRecord {
	out := make([]RFMRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
