package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Rinduprawa/project-ecommerce/pkg/analytics"
)

// File names written by WriteCSVDir, one per summary table.
const (
	FileCategories       = "category_orders.csv"
	FileCustomersByCity  = "customers_by_city.csv"
	FileCustomersByState = "customers_by_state.csv"
	FileSellersByCity    = "sellers_by_city.csv"
	FileSellersByState   = "sellers_by_state.csv"
	FileFiveStar         = "five_star_categories.csv"
	FileOneStar          = "one_star_categories.csv"
	FileRFM              = "rfm.csv"
)

// WriteCSVDir writes every report table as its own CSV file in dir,
// creating the directory if needed. Files start with a UTF-8 BOM so
// spreadsheet applications pick up the encoding.
func WriteCSVDir(r *Report, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	writes := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{FileCategories, []string{"category", "product_count"}, categoryRows(r.Categories)},
		{FileCustomersByCity, []string{"customer_city", "customer_count"}, regionRows(r.CustomersByCity)},
		{FileCustomersByState, []string{"customer_state", "customer_count"}, regionRows(r.CustomersByState)},
		{FileSellersByCity, []string{"seller_city", "seller_count"}, regionRows(r.SellersByCity)},
		{FileSellersByState, []string{"seller_state", "seller_count"}, regionRows(r.SellersByState)},
		{FileFiveStar, []string{"category", "five_star"}, ratingRows(r.FiveStar)},
		{FileOneStar, []string{"category", "one_star"}, ratingRows(r.OneStar)},
		{FileRFM, []string{"customer_id", "recency", "frequency", "monetary"}, rfmRows(r.RFM)},
	}

	for _, w := range writes {
		path := filepath.Join(dir, w.name)
		if err := writeCSVFile(path, w.headers, w.rows); err != nil {
			return fmt.Errorf("write %s: %w", w.name, err)
		}
	}
	return nil
}

func writeCSVFile(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	// UTF-8 BOM for Excel compatibility
	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func categoryRows(table []analytics.CategoryCount) [][]string {
	rows := make([][]string, 0, len(table))
	for _, c := range table {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.Orders)})
	}
	return rows
}

func regionRows(table []analytics.RegionCount) [][]string {
	rows := make([][]string, 0, len(table))
	for _, rc := range table {
		rows = append(rows, []string{rc.Region, strconv.Itoa(rc.Count)})
	}
	return rows
}

func ratingRows(table []analytics.CategoryProducts) [][]string {
	rows := make([][]string, 0, len(table))
	for _, cp := range table {
		rows = append(rows, []string{cp.Category, strconv.Itoa(cp.Products)})
	}
	return rows
}

func rfmRows(table []analytics.RFMRecord) [][]string {
	rows := make([][]string, 0, len(table))
	for _, r := range table {
		rows = append(rows, []string{
			r.CustomerID,
			strconv.Itoa(r.RecencyDays),
			strconv.Itoa(r.Frequency),
			strconv.FormatFloat(r.Monetary, 'f', 2, 64),
		})
	}
	return rows
}
