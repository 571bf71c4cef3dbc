package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the xlsx workbook, one per summary table.
const (
	SheetCategories       = "Category Orders"
	SheetCustomersByCity  = "Customers by City"
	SheetCustomersByState = "Customers by State"
	SheetSellersByCity    = "Sellers by City"
	SheetSellersByState   = "Sellers by State"
	SheetFiveStar         = "Five Star"
	SheetOneStar          = "One Star"
	SheetRFM              = "RFM"
)

// WriteXLSX writes the report as an xlsx workbook with one sheet per
// summary table. The RFM sheet carries the guarded mean block only when
// the means are defined for the window.
func WriteXLSX(r *Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{SheetCategories, []string{"category", "product_count"}, categoryRows(r.Categories)},
		{SheetCustomersByCity, []string{"customer_city", "customer_count"}, regionRows(r.CustomersByCity)},
		{SheetCustomersByState, []string{"customer_state", "customer_count"}, regionRows(r.CustomersByState)},
		{SheetSellersByCity, []string{"seller_city", "seller_count"}, regionRows(r.SellersByCity)},
		{SheetSellersByState, []string{"seller_state", "seller_count"}, regionRows(r.SellersByState)},
		{SheetFiveStar, []string{"category", "five_star"}, ratingRows(r.FiveStar)},
		{SheetOneStar, []string{"category", "one_star"}, ratingRows(r.OneStar)},
		{SheetRFM, []string{"customer_id", "recency", "frequency", "monetary"}, rfmRows(r.RFM)},
	}

	for i, sheet := range sheets {
		if i == 0 {
			// Reuse the default sheet for the first table.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return fmt.Errorf("rename default sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("create sheet %s: %w", sheet.name, err)
			}
		}

		if err := writeSheet(f, sheet.name, sheet.headers, sheet.rows); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet.name, err)
		}
	}

	if r.SummaryOK {
		if err := writeSummaryBlock(f, r); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, row := range rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeSummaryBlock appends the mean RFM measures to the right of the RFM
// table.
func writeSummaryBlock(f *excelize.File, r *Report) error {
	block := [][]interface{}{
		{"customers", r.Summary.Customers},
		{"mean_recency_days", r.Summary.MeanRecency},
		{"mean_frequency", r.Summary.MeanFrequency},
		{"mean_monetary", r.Summary.MeanMonetary},
	}

	for i, pair := range block {
		labelCell, err := excelize.CoordinatesToCellName(6, i+1)
		if err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(7, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetRFM, labelCell, pair[0]); err != nil {
			return fmt.Errorf("write summary label: %w", err)
		}
		if err := f.SetCellValue(SheetRFM, valueCell, pair[1]); err != nil {
			return fmt.Errorf("write summary value: %w", err)
		}
	}
	return nil
}
