// Package timesheet is the pure computation core of worklog: calendar
// arithmetic, windowed aggregation, derived analytics and intensity
// classification over a snapshot of daily work entries. It performs no I/O
// and never mutates its inputs; callers hand it an Entries snapshot and an
// anchor date and render whatever comes back.
package timesheet

import (
	"math"
	"sort"
)

// Entry is one logged day of work. Billed is always a resolved boolean:
// records that predate the billed flag are upgraded to Billed=true before
// they reach this type (see RawEntry.Resolve).
type Entry struct {
	Date   string  `json:"date"` // ISO 'YYYY-MM-DD', acts as the map key
	Hours  float64 `json:"hours"`
	Billed bool    `json:"is_billed"`
	Note   string  `json:"note,omitempty"`
}

// Entries maps ISO date keys to entries. The core only ever iterates it
// through an explicit date range, so map order is irrelevant.
type Entries map[string]Entry

// RawEntry is the storage/wire shape of an entry, where the billed flag may
// be absent. Resolve is the single normalization point for the historical
// default: a missing flag means the hours were billed.
type RawEntry struct {
	Date   string  `json:"date"`
	Hours  float64 `json:"hours"`
	Billed *bool   `json:"is_billed,omitempty"`
	Note   string  `json:"note,omitempty"`
}

// Resolve converts a raw record into a fully-resolved Entry. A nil billed
// flag becomes true, and a non-finite hours value becomes 0 so sums never
// see NaN or Inf.
func (r RawEntry) Resolve() Entry {
	billed := true
	if r.Billed != nil {
		billed = *r.Billed
	}
	hours := r.Hours
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		hours = 0
	}
	return Entry{Date: r.Date, Hours: hours, Billed: billed, Note: r.Note}
}

// ResolveAll resolves a slice of raw records into a snapshot, keyed by date.
// Later duplicates of the same date replace earlier ones.
func ResolveAll(raw []RawEntry) Entries {
	entries := make(Entries, len(raw))
	for _, r := range raw {
		entries[r.Date] = r.Resolve()
	}
	return entries
}

// Payment is an independent client-payment record. Payments are not part of
// the statistics engine; the app only sorts and sums them.
type Payment struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"` // ISO 'YYYY-MM-DD'
	Amount float64 `json:"amount"`
	Note   string  `json:"note,omitempty"`
}

// SortPaymentsByDateDesc orders payments newest first, falling back to ID
// so same-day payments keep a stable order.
func SortPaymentsByDateDesc(payments []Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		if payments[i].Date != payments[j].Date {
			return payments[i].Date > payments[j].Date
		}
		return payments[i].ID > payments[j].ID
	})
}

// TotalPayments sums payment amounts.
func TotalPayments(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
