package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	// ReferenceYear is the fixed year all generated dates fall in.
	ReferenceYear = 2024

	// BatchSize is the number of records produced per generation run.
	BatchSize = 100
)

// Bounds for generated monetary values, in whole currency units.
const (
	MinAmountPaid = 10.0
	MaxAmountPaid = 500.0
	MinCashback   = 0.0
	MaxCashback   = 20.0
)

// Categories an expense can be filed under.
var Categories = []string{
	"Food", "Transportation", "Bills", "Groceries", "Entertainment",
	"Investments", "School FEES", "College FEES", "Fruits & Vegetables",
	"Stationery", "Subscriptions", "Sports & Fitness", "Home Essentials",
}

// PaymentModes an expense can be settled with.
var PaymentModes = []string{
	"Cash", "Online", "Credit Card", "Debit Card", "Wallet", "Net Banking", "UPI",
}

// Descriptions is the fixed pool of free-text phrases for generated records.
var Descriptions = []string{
	"Investment in mutual funds",
	"Paid school fees",
	"Bought groceries",
	"Dining out with family",
	"Purchased new stationery",
	"Monthly subscription fee",
	"Gym membership renewal",
	"Home improvement essentials",
}

// Record is one simulated expense transaction. Records carry no identity;
// duplicates are expected and unproblematic, and rows are only ever appended.
type Record struct {
	Date        string // YYYY-MM-DD
	Category    string
	PaymentMode string
	Description string
	AmountPaid  float64
	Cashback    float64
	Month       string
}

var (
	ErrInvalidMonth     = errors.New("invalid month")
	ErrEmptyCategory    = errors.New("empty category")
	ErrAmountOutOfRange = errors.New("amount out of range")
)

// MonthName returns the English name of month m (1-12).
func MonthName(m int) string {
	return time.Month(m).String()
}

// ValidMonth reports whether m is a calendar month number.
func ValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// DaysIn returns the number of days in month m of the reference year.
func DaysIn(m int) int {
	// Day 0 of the following month is the last day of m.
	return time.Date(ReferenceYear, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date formats a reference-year calendar date the way it is stored.
func Date(m, day int) string {
	return time.Date(ReferenceYear, time.Month(m), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

func (r Record) Validate() error {
	d, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return fmt.Errorf("parse record date %q: %w", r.Date, err)
	}
	if r.Month != d.Month().String() {
		return fmt.Errorf("month %q does not match date %q", r.Month, r.Date)
	}
	if r.Category == "" {
		return ErrEmptyCategory
	}
	if r.AmountPaid < MinAmountPaid || r.AmountPaid > MaxAmountPaid {
		return ErrAmountOutOfRange
	}
	if r.Cashback < MinCashback || r.Cashback > MaxCashback {
		return ErrAmountOutOfRange
	}
	return nil
}
