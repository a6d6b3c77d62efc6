package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/avelin/worklog/internal/timesheet"
)

type jsonExport struct {
	ExportedAt   string              `json:"exported_at"`
	EntryCount   int                 `json:"entry_count"`
	PaymentCount int                 `json:"payment_count"`
	Entries      []timesheet.Entry   `json:"entries"`
	Payments     []timesheet.Payment `json:"payments"`
}

// jsonImport mirrors jsonExport but decodes entries in their raw form, so
// backups written before the billed flag existed still import cleanly.
type jsonImport struct {
	Entries  []timesheet.RawEntry `json:"entries"`
	Payments []timesheet.Payment  `json:"payments"`
}

// ToJSON writes all entries and payments to a pretty-printed JSON file.
func ToJSON(entries timesheet.Entries, payments []timesheet.Payment, path string) error {
	export := jsonExport{
		ExportedAt:   time.Now().UTC().Format(time.RFC3339),
		EntryCount:   len(entries),
		PaymentCount: len(payments),
		Entries:      sortedByDate(entries),
		Payments:     payments,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON reads a JSON export back into a snapshot and a payment list.
// Entries missing the billed flag resolve to billed, matching how stored
// records from older versions are interpreted.
func FromJSON(path string) (timesheet.Entries, []timesheet.Payment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read json file: %w", err)
	}

	var imported jsonImport
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, nil, fmt.Errorf("parse json export: %w", err)
	}

	return timesheet.ResolveAll(imported.Entries), imported.Payments, nil
}
