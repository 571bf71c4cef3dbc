package orders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"
)

// parquetColumns holds leaf column indexes detected from a Parquet schema.
// Optional semantics mirror the CSV reader: the category column accepts
// either header spelling.
type parquetColumns struct {
	byField map[int]func(*Record, parquet.Value)
}

func detectParquetColumns(schema *parquet.Schema) (parquetColumns, error) {
	cols := parquetColumns{byField: make(map[int]func(*Record, parquet.Value))}
	seen := make(map[string]bool)

	setString := func(assign func(*Record, string)) func(*Record, parquet.Value) {
		return func(rec *Record, v parquet.Value) { assign(rec, v.String()) }
	}

	for i, field := range schema.Fields() {
		var assign func(*Record, parquet.Value)
		name := field.Name()

		switch name {
		case colOrderID:
			assign = setString(func(r *Record, s string) { r.OrderID = s })
		case colCustomerID:
			assign = setString(func(r *Record, s string) { r.CustomerID = s })
		case colCustomerCity:
			assign = setString(func(r *Record, s string) { r.CustomerCity = s })
		case colCustomerState:
			assign = setString(func(r *Record, s string) { r.CustomerState = s })
		case colSellerID:
			assign = setString(func(r *Record, s string) { r.SellerID = s })
		case colSellerCity:
			assign = setString(func(r *Record, s string) { r.SellerCity = s })
		case colSellerState:
			assign = setString(func(r *Record, s string) { r.SellerState = s })
		case colProductID:
			assign = setString(func(r *Record, s string) { r.ProductID = s })
		case colCategory, colCategoryEnglish:
			name = colCategory
			assign = setString(func(r *Record, s string) { r.ProductCategory = s })
		case colReviewScore:
			assign = func(r *Record, v parquet.Value) { r.ReviewScore = int(numericValue(v)) }
		case colPurchasedAt:
			assign = func(r *Record, v parquet.Value) { r.PurchasedAt = timestampValue(v) }
		case colApprovedAt:
			assign = func(r *Record, v parquet.Value) { r.ApprovedAt = timestampValue(v) }
		case colPrice:
			assign = func(r *Record, v parquet.Value) { r.Price = numericValue(v) }
		default:
			continue
		}

		cols.byField[i] = assign
		seen[name] = true
	}

	required := []string{
		colOrderID, colCustomerID, colCustomerCity, colCustomerState,
		colSellerID, colSellerCity, colSellerState,
		colProductID, colCategory, colReviewScore,
		colPurchasedAt, colApprovedAt, colPrice,
	}
	var missing []string
	for _, name := range required {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return parquetColumns{}, &SchemaError{Missing: missing}
	}
	return cols, nil
}

// numericValue widens any numeric physical type to float64; string values
// that fail to parse become zero, matching the CSV reader's policy.
func numericValue(v parquet.Value) float64 {
	switch v.Kind() {
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		var f float64
		if _, err := fmt.Sscanf(v.String(), "%g", &f); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}

// timestampValue interprets a timestamp column value. Int64 values are
// taken as milliseconds since the Unix epoch (the common Parquet logical
// timestamp); byte arrays are parsed as timestamp strings.
func timestampValue(v parquet.Value) time.Time {
	if v.IsNull() {
		return time.Time{}
	}
	switch v.Kind() {
	case parquet.Int64:
		ms := v.Int64()
		if ms == 0 {
			return time.Time{}
		}
		return time.UnixMilli(ms).UTC()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return parseTimestamp(v.String())
	default:
		return time.Time{}
	}
}

// ReadParquetFile reads an order-line dataset from a local Parquet file.
// Column detection follows the same schema rules as the CSV reader.
func ReadParquetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	cols, err := detectParquetColumns(pf.Schema())
	if err != nil {
		return nil, err
	}

	var ds Dataset
	buf := make([]parquet.Row, 1024)

	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				rec, ok := recordFromParquetRow(row, cols)
				if !ok {
					continue
				}
				ds = append(ds, rec)
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				rows.Close()
				return nil, fmt.Errorf("read parquet rows: %w", err)
			}
			if n == 0 {
				break
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("close row group: %w", err)
		}
	}
	return ds, nil
}

func recordFromParquetRow(row parquet.Row, cols parquetColumns) (Record, bool) {
	var rec Record
	for _, val := range row {
		if val.IsNull() {
			continue
		}
		if assign, ok := cols.byField[val.Column()]; ok {
			assign(&rec, val)
		}
	}
	if rec.OrderID == "" {
		return Record{}, false
	}
	return rec, true
}
