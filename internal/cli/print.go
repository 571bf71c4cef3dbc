package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/Rinduprawa/project-ecommerce/pkg/analytics"
	"github.com/Rinduprawa/project-ecommerce/pkg/export"
	"github.com/Rinduprawa/project-ecommerce/pkg/humanfmt"
)

// printReport renders the report as console tables, top rows of each
// table only. Formatting lives entirely here; the aggregators hand over
// raw values.
func printReport(r *export.Report, top int) error {
	return writeReport(os.Stdout, r, top)
}

func writeReport(out io.Writer, r *export.Report, top int) error {
	fmt.Fprintf(out, "E-Commerce Report  %s .. %s  (%d order lines)\n",
		r.Start.Format(dateLayout), r.End.Format(dateLayout), r.Rows)

	printCategories(out, "Best-selling categories", r.Categories, top)
	printCategories(out, "Worst-selling categories", ascendingCategories(r.Categories), top)

	printRegions(out, "Customers by state", "customers", r.CustomersByState, top)
	printRegions(out, "Customers by city", "customers", r.CustomersByCity, top)
	printRegions(out, "Sellers by state", "sellers", r.SellersByState, top)
	printRegions(out, "Sellers by city", "sellers", r.SellersByCity, top)

	printRatings(out, "Five-star categories", r.FiveStar, top)
	printRatings(out, "One-star categories", r.OneStar, top)

	printRFM(out, r, top)
	return nil
}

// ascendingCategories is the worst-sellers view: the same table re-sorted
// ascending by count, category name ascending on ties.
func ascendingCategories(table []analytics.CategoryCount) []analytics.CategoryCount {
	out := make([]analytics.CategoryCount, len(table))
	copy(out, table)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders < out[j].Orders
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func printCategories(out io.Writer, title string, table []analytics.CategoryCount, top int) {
	fmt.Fprintf(out, "\n%s\n", title)
	if len(table) == 0 {
		fmt.Fprintln(out, "  (no data in range)")
		return
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  category\torders")
	for i, c := range table {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %s\t%d\n", c.Category, c.Orders)
	}
	w.Flush()
}

func printRegions(out io.Writer, title, noun string, table []analytics.RegionCount, top int) {
	fmt.Fprintf(out, "\n%s\n", title)
	if len(table) == 0 {
		fmt.Fprintln(out, "  (no data in range)")
		return
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  region\t%s\n", noun)
	for i, rc := range table {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %s\t%d\n", rc.Region, rc.Count)
	}
	w.Flush()
}

func printRatings(out io.Writer, title string, table []analytics.CategoryProducts, top int) {
	fmt.Fprintf(out, "\n%s\n", title)
	if len(table) == 0 {
		fmt.Fprintln(out, "  (no data in range)")
		return
	}
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  category\tproducts")
	for i, cp := range table {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "  %s\t%d\n", cp.Category, cp.Products)
	}
	w.Flush()
}

func printRFM(out io.Writer, r *export.Report, top int) {
	fmt.Fprintln(out, "\nTop customers (RFM)")
	if !r.SummaryOK {
		fmt.Fprintln(out, "  (no customers in range)")
		return
	}

	fmt.Fprintf(out, "  mean recency: %.1f days   mean frequency: %.2f   mean monetary: %s\n",
		r.Summary.MeanRecency, r.Summary.MeanFrequency, humanfmt.Money(r.Summary.MeanMonetary))

	views := []struct {
		title string
		rows  []analytics.RFMRecord
	}{
		{"By recency", analytics.TopByRecency(r.RFM, top)},
		{"By frequency", analytics.TopByFrequency(r.RFM, top)},
		{"By monetary", analytics.TopByMonetary(r.RFM, top)},
	}
	for _, v := range views {
		fmt.Fprintf(out, "\n  %s\n", v.title)
		w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "    customer\trecency\tfrequency\tmonetary")
		for _, rec := range v.rows {
			fmt.Fprintf(w, "    %s\t%d\t%d\t%s\n",
				rec.CustomerID, rec.RecencyDays, rec.Frequency, humanfmt.Money(rec.Monetary))
		}
		w.Flush()
	}
}
