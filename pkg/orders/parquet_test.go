package orders

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type parquetOrderRow struct {
	OrderID       string  `parquet:"order_id"`
	CustomerID    string  `parquet:"customer_id"`
	CustomerCity  string  `parquet:"customer_city"`
	CustomerState string  `parquet:"customer_state"`
	SellerID      string  `parquet:"seller_id"`
	SellerCity    string  `parquet:"seller_city"`
	SellerState   string  `parquet:"seller_state"`
	ProductID     string  `parquet:"product_id"`
	Category      string  `parquet:"product_category_name_english"`
	ReviewScore   int32   `parquet:"review_score"`
	PurchasedAt   int64   `parquet:"order_purchase_timestamp"`
	ApprovedAt    int64   `parquet:"order_approved_at"`
	Price         float64 `parquet:"price"`
}

func writeParquet[T any](t *testing.T, rows []T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orders.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		t.Fatalf("write parquet rows: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close parquet writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadParquetFile(t *testing.T) {
	purchased := ts("2024-01-04 08:00:00")
	approved := ts("2024-01-05 10:00:00")

	path := writeParquet(t, []parquetOrderRow{
		{
			OrderID: "A", CustomerID: "C1", CustomerCity: "sao paulo", CustomerState: "SP",
			SellerID: "S1", SellerCity: "campinas", SellerState: "SP",
			ProductID: "P1", Category: "toys", ReviewScore: 5,
			PurchasedAt: purchased.UnixMilli(), ApprovedAt: approved.UnixMilli(),
			Price: 10.5,
		},
		{
			OrderID: "B", CustomerID: "C2", CustomerCity: "rio de janeiro", CustomerState: "RJ",
			SellerID: "S2", SellerCity: "niteroi", SellerState: "RJ",
			ProductID: "P2", Category: "books", ReviewScore: 1,
			PurchasedAt: ts("2024-01-06 09:00:00").UnixMilli(),
			// ApprovedAt zero: unapproved order.
			Price: 20,
		},
	})

	ds, err := ReadParquetFile(path)
	if err != nil {
		t.Fatalf("ReadParquetFile: %v", err)
	}
	if len(ds) != 2 {
		t.Fatalf("got %d records, want 2", len(ds))
	}

	first := ds[0]
	if first.OrderID != "A" || first.ProductCategory != "toys" || first.Price != 10.5 {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.ReviewScore != 5 {
		t.Errorf("review score = %d", first.ReviewScore)
	}
	if !first.PurchasedAt.Equal(purchased) {
		t.Errorf("purchased at = %v, want %v", first.PurchasedAt, purchased)
	}
	if !first.ApprovedAt.Equal(approved) {
		t.Errorf("approved at = %v, want %v", first.ApprovedAt, approved)
	}
	if !ds[1].ApprovedAt.IsZero() {
		t.Errorf("zero-milli approval should be null, got %v", ds[1].ApprovedAt)
	}
}

func TestReadParquetFileMissingColumns(t *testing.T) {
	type incompleteRow struct {
		OrderID    string `parquet:"order_id"`
		CustomerID string `parquet:"customer_id"`
	}

	path := writeParquet(t, []incompleteRow{{OrderID: "A", CustomerID: "C1"}})

	_, err := ReadParquetFile(path)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("got %v, want *SchemaError", err)
	}
	if len(schemaErr.Missing) == 0 {
		t.Error("SchemaError lists no missing columns")
	}
}

func TestReadParquetFileMissingFile(t *testing.T) {
	if _, err := ReadParquetFile(filepath.Join(t.TempDir(), "nope.parquet")); err == nil {
		t.Error("expected error for missing file")
	}
}
