// Package export writes work entries and payments to CSV or JSON files and
// reads JSON backups back in.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/avelin/worklog/internal/timesheet"
)

// ToCSV writes all entries to a CSV file, sorted by date ascending.
func ToCSV(entries timesheet.Entries, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Hours", "Billed", "Note"}); err != nil {
		return err
	}

	for _, e := range sortedByDate(entries) {
		billed := "no"
		if e.Billed {
			billed = "yes"
		}
		row := []string{
			e.Date,
			fmt.Sprintf("%g", e.Hours),
			billed,
			e.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func sortedByDate(entries timesheet.Entries) []timesheet.Entry {
	out := make([]timesheet.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
