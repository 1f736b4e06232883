package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/segmentio/parquet-go"
)

type testRow struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
	Age  int64  `parquet:"age"`
}

// createTestParquetFile creates a temporary parquet file with test data
func createTestParquetFile(t *testing.T, rows []testRow) string {
	t.Helper()
	testFile := filepath.Join(t.TempDir(), "test.parquet")

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[testRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}

	return testFile
}

func TestReader_ReadAll(t *testing.T) {
	testFile := createTestParquetFile(t, []testRow{
		{ID: 1, Name: "Alice", Age: 30},
		{ID: 2, Name: "Bob", Age: 25},
	})

	r, err := NewReader(testFile)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer func() { _ = r.Close() }()

	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ReadAll() returned %d rows, want 2", len(rows))
	}

	// Keys follow the schema's column order, not map iteration order.
	if diff := cmp.Diff([]string{"id", "name", "age"}, rows[0].Keys()); diff != "" {
		t.Errorf("ReadAll() column order mismatch (-want +got):\n%s", diff)
	}

	name, _ := rows[1].Get("name")
	if name != "Bob" {
		t.Errorf("rows[1].name = %v, want Bob", name)
	}
}

func TestOrderRow_ExtraColumnsDeterministic(t *testing.T) {
	row := map[string]interface{}{
		"id":     int64(1),
		"name":   "Alice",
		"zz_tag": "z",
		"aa_tag": "a",
	}

	rec := orderRow(row, []string{"id", "name"})
	want := []string{"id", "name", "aa_tag", "zz_tag"}
	if diff := cmp.Diff(want, rec.Keys()); diff != "" {
		t.Errorf("orderRow() key order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewReader_MissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "nope.parquet"))
	if err == nil {
		t.Errorf("NewReader() expected error for missing file")
	}
}

func TestNewReader_NotParquet(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "bad.parquet")
	if err := os.WriteFile(testFile, []byte("not a parquet file"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := NewReader(testFile)
	if err == nil {
		t.Errorf("NewReader() expected error for invalid parquet data")
	}
}

func TestReader_CloseTwice(t *testing.T) {
	testFile := createTestParquetFile(t, []testRow{{ID: 1, Name: "Alice", Age: 30}})

	r, err := NewReader(testFile)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
