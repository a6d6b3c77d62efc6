package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avelin/worklog/internal/timesheet"
)

func sampleData() (timesheet.Entries, []timesheet.Payment) {
	entries := timesheet.Entries{
		"2024-03-11": {Date: "2024-03-11", Hours: 8, Billed: true, Note: "acme api"},
		"2024-03-12": {Date: "2024-03-12", Hours: 4.5, Billed: false},
		"2024-03-01": {Date: "2024-03-01", Hours: 6, Billed: true, Note: `notes with "quotes" and, commas`},
	}
	payments := []timesheet.Payment{
		{ID: 1, Date: "2024-03-15", Amount: 500, Note: "invoice 12"},
		{ID: 2, Date: "2024-02-01", Amount: 120.5},
	}
	return entries, payments
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	entries, _ := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(entries, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Date", "Hours", "Billed", "Note"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	// Rows come out sorted by date.
	if records[1][0] != "2024-03-01" || records[3][0] != "2024-03-12" {
		t.Fatalf("rows not date-sorted: %v", records)
	}
	if records[2][1] != "8" || records[2][2] != "yes" {
		t.Fatalf("billed row mangled: %v", records[2])
	}
	if records[3][1] != "4.5" || records[3][2] != "no" {
		t.Fatalf("unbilled row mangled: %v", records[3])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, _ := r.ReadAll()
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	entries, _ := sampleData()
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(entries, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("CSV should be valid even with special chars: %v", err)
	}
	if records[1][3] != `notes with "quotes" and, commas` {
		t.Fatalf("note mangled: %q", records[1][3])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	entries, payments := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(entries, payments, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.EntryCount != 3 || len(result.Entries) != 3 {
		t.Fatalf("entry counts = %d/%d, want 3", result.EntryCount, len(result.Entries))
	}
	if result.PaymentCount != 2 || len(result.Payments) != 2 {
		t.Fatalf("payment counts = %d/%d, want 2", result.PaymentCount, len(result.Payments))
	}
	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}

	// Entries are date-sorted in the export.
	if result.Entries[0].Date != "2024-03-01" || result.Entries[2].Date != "2024-03-12" {
		t.Fatalf("entries not date-sorted: %+v", result.Entries)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(nil, nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.EntryCount != 0 || result.PaymentCount != 0 {
		t.Fatalf("counts = %d/%d, want 0", result.EntryCount, result.PaymentCount)
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(nil, nil, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

// ============================================================
// Import
// ============================================================

func TestFromJSONRoundTrip(t *testing.T) {
	entries, payments := sampleData()
	path := filepath.Join(t.TempDir(), "roundtrip.json")

	if err := ToJSON(entries, payments, path); err != nil {
		t.Fatal(err)
	}

	gotEntries, gotPayments, err := FromJSON(path)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if len(gotEntries) != len(entries) {
		t.Fatalf("imported %d entries, want %d", len(gotEntries), len(entries))
	}
	for date, want := range entries {
		got, ok := gotEntries[date]
		if !ok {
			t.Fatalf("entry %s missing after import", date)
		}
		if got != want {
			t.Fatalf("entry %s = %+v, want %+v", date, got, want)
		}
	}
	if len(gotPayments) != 2 || gotPayments[0].Amount != 500 {
		t.Fatalf("payments = %+v", gotPayments)
	}
}

func TestFromJSONMissingBilledFlag(t *testing.T) {
	// A backup from before the billed flag: entries import as billed.
	path := filepath.Join(t.TempDir(), "legacy.json")
	legacy := `{"entries": [{"date": "2024-03-01", "hours": 10}], "payments": []}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, _, err := FromJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	e, ok := entries["2024-03-01"]
	if !ok {
		t.Fatal("legacy entry missing")
	}
	if !e.Billed {
		t.Fatal("legacy entry should resolve to billed")
	}
	if e.Hours != 10 {
		t.Fatalf("hours = %v, want 10", e.Hours)
	}
}

func TestFromJSONMissingFile(t *testing.T) {
	if _, _, err := FromJSON("/nonexistent/file.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, _, err := FromJSON(path); err == nil {
		t.Fatal("expected error for malformed json")
	}
}
