package store

import (
	"fmt"
	"time"

	"github.com/avelin/worklog/internal/timesheet"
)

// AddPayment records a client payment and returns it with its assigned ID.
func (s *Store) AddPayment(date string, amount float64, note string) (*timesheet.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO payments (date, amount, note, created_at) VALUES (?, ?, ?, ?)`,
		date, amount, note, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetPayment(id)
}

// GetPayment returns a payment by ID.
func (s *Store) GetPayment(id int64) (*timesheet.Payment, error) {
	p := &timesheet.Payment{}
	err := s.db.QueryRow(
		`SELECT id, date, amount, note FROM payments WHERE id = ?`, id,
	).Scan(&p.ID, &p.Date, &p.Amount, &p.Note)
	if err != nil {
		return nil, fmt.Errorf("get payment %d: %w", id, err)
	}
	return p, nil
}

// DeletePayment removes a payment by ID.
func (s *Store) DeletePayment(id int64) error {
	_, err := s.db.Exec(`DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete payment %d: %w", id, err)
	}
	return nil
}

// ListPayments returns all payments, newest date first.
func (s *Store) ListPayments() ([]timesheet.Payment, error) {
	rows, err := s.db.Query(
		`SELECT id, date, amount, note FROM payments ORDER BY date DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []timesheet.Payment
	for rows.Next() {
		var p timesheet.Payment
		if err := rows.Scan(&p.ID, &p.Date, &p.Amount, &p.Note); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// TotalPayments sums all recorded payment amounts.
func (s *Store) TotalPayments() (float64, error) {
	var total float64
	err := s.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total payments: %w", err)
	}
	return total, nil
}
