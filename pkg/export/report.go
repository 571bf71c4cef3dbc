// Package export builds the dashboard report for a date window and writes
// it out as CSV files or an xlsx workbook. These are report artifacts for
// spreadsheet tools; the aggregators themselves never format values.
package export

import (
	"time"

	"github.com/Rinduprawa/project-ecommerce/pkg/analytics"
	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
)

// Report bundles every summary table computed for one filtered window.
type Report struct {
	Start time.Time
	End   time.Time

	// Rows is the size of the filtered subset the tables were computed
	// from.
	Rows int

	Categories []analytics.CategoryCount

	CustomersByCity  []analytics.RegionCount
	CustomersByState []analytics.RegionCount
	SellersByCity    []analytics.RegionCount
	SellersByState   []analytics.RegionCount

	FiveStar []analytics.CategoryProducts
	OneStar  []analytics.CategoryProducts

	RFM []analytics.RFMRecord

	// Summary holds the mean RFM measures; SummaryOK is false when the
	// window contained no RFM-eligible customers and the means are
	// undefined.
	Summary   analytics.RFMSummary
	SummaryOK bool
}

// BuildReport filters the dataset to [start, end] and runs every
// aggregator over the subset. The input dataset is not modified.
func BuildReport(ds orders.Dataset, start, end time.Time) *Report {
	subset := ds.FilterApprovedBetween(start, end)

	r := &Report{
		Start: start,
		End:   end,
		Rows:  len(subset),

		Categories: analytics.TopCategories(subset),

		CustomersByCity:  analytics.CustomersByRegion(subset, analytics.RegionCity),
		CustomersByState: analytics.CustomersByRegion(subset, analytics.RegionState),
		SellersByCity:    analytics.SellersByRegion(subset, analytics.RegionCity),
		SellersByState:   analytics.SellersByRegion(subset, analytics.RegionState),

		FiveStar: analytics.RatingExtremes(subset, analytics.ScoreHighest),
		OneStar:  analytics.RatingExtremes(subset, analytics.ScoreLowest),

		RFM: analytics.ComputeRFM(subset),
	}
	r.Summary, r.SummaryOK = analytics.SummarizeRFM(r.RFM)
	return r
}
