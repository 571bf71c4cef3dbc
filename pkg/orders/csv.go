package orders

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Column names as they appear in the exported dataset. The category column
// accepts either the plain or the translated-header spelling.
const (
	colOrderID         = "order_id"
	colCustomerID      = "customer_id"
	colCustomerCity    = "customer_city"
	colCustomerState   = "customer_state"
	colSellerID        = "seller_id"
	colSellerCity      = "seller_city"
	colSellerState     = "seller_state"
	colProductID       = "product_id"
	colCategory        = "product_category"
	colCategoryEnglish = "product_category_name_english"
	colReviewScore     = "review_score"
	colPurchasedAt     = "order_purchase_timestamp"
	colApprovedAt      = "order_approved_at"
	colPrice           = "price"
)

// Timestamp layouts accepted by the readers. Values that match none of
// these are treated as null rather than failing the whole load.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// columnIndexes maps dataset column names to positions in a header row.
type columnIndexes struct {
	orderID       int
	customerID    int
	customerCity  int
	customerState int
	sellerID      int
	sellerCity    int
	sellerState   int
	productID     int
	category      int
	reviewScore   int
	purchasedAt   int
	approvedAt    int
	price         int
}

func detectColumns(header []string) (columnIndexes, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[strings.TrimSpace(name)] = i
	}

	lookup := func(name string) int {
		if i, ok := byName[name]; ok {
			return i
		}
		return -1
	}

	idx := columnIndexes{
		orderID:       lookup(colOrderID),
		customerID:    lookup(colCustomerID),
		customerCity:  lookup(colCustomerCity),
		customerState: lookup(colCustomerState),
		sellerID:      lookup(colSellerID),
		sellerCity:    lookup(colSellerCity),
		sellerState:   lookup(colSellerState),
		productID:     lookup(colProductID),
		category:      lookup(colCategoryEnglish),
		reviewScore:   lookup(colReviewScore),
		purchasedAt:   lookup(colPurchasedAt),
		approvedAt:    lookup(colApprovedAt),
		price:         lookup(colPrice),
	}
	if idx.category < 0 {
		idx.category = lookup(colCategory)
	}

	missing := map[string]int{
		colOrderID:       idx.orderID,
		colCustomerID:    idx.customerID,
		colCustomerCity:  idx.customerCity,
		colCustomerState: idx.customerState,
		colSellerID:      idx.sellerID,
		colSellerCity:    idx.sellerCity,
		colSellerState:   idx.sellerState,
		colProductID:     idx.productID,
		colCategory:      idx.category,
		colReviewScore:   idx.reviewScore,
		colPurchasedAt:   idx.purchasedAt,
		colApprovedAt:    idx.approvedAt,
		colPrice:         idx.price,
	}

	var names []string
	for name, pos := range missing {
		if pos < 0 {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		return columnIndexes{}, &SchemaError{Missing: names}
	}
	return idx, nil
}

// ReadCSV reads an order-line dataset from CSV. The first row must be a
// header naming every dataset column; a missing column is a *SchemaError.
// Malformed timestamps become null and malformed numbers become zero, so
// one bad row never invalidates the batch.
func ReadCSV(r io.Reader) (Dataset, error) {
	csvr := csv.NewReader(r)
	csvr.ReuseRecord = true
	csvr.FieldsPerRecord = -1
	csvr.LazyQuotes = true

	header, err := csvr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Missing: []string{"(empty input)"}}
		}
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	idx, err := detectColumns(header)
	if err != nil {
		return nil, err
	}

	var ds Dataset
	for {
		fields, err := csvr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		rec, ok := recordFromFields(fields, idx)
		if !ok {
			continue
		}
		ds = append(ds, rec)
	}
	return ds, nil
}

// OpenCSV reads a dataset from a CSV file, decompressing transparently
// when the path ends in .gz.
func OpenCSV(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	}

	ds, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ds, nil
}

func recordFromFields(fields []string, idx columnIndexes) (Record, bool) {
	at := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}

	rec := Record{
		OrderID:         at(idx.orderID),
		CustomerID:      at(idx.customerID),
		CustomerCity:    at(idx.customerCity),
		CustomerState:   at(idx.customerState),
		SellerID:        at(idx.sellerID),
		SellerCity:      at(idx.sellerCity),
		SellerState:     at(idx.sellerState),
		ProductID:       at(idx.productID),
		ProductCategory: at(idx.category),
		PurchasedAt:     parseTimestamp(at(idx.purchasedAt)),
		ApprovedAt:      parseTimestamp(at(idx.approvedAt)),
	}

	// Rows with no order id carry nothing any aggregation can use.
	if rec.OrderID == "" {
		return Record{}, false
	}

	if score, err := strconv.Atoi(at(idx.reviewScore)); err == nil {
		rec.ReviewScore = score
	} else if f, err := strconv.ParseFloat(at(idx.reviewScore), 64); err == nil {
		rec.ReviewScore = int(f)
	}
	if price, err := strconv.ParseFloat(at(idx.price), 64); err == nil {
		rec.Price = price
	}

	return rec, true
}

// parseTimestamp parses a timestamp string, returning the zero time for
// empty or unparsable values.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
