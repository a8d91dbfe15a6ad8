package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "Income"
	Expense TransactionType = "Expense"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger entry. Immutable once created.
	Transaction struct {
		ID       string
		Type     TransactionType
		Category string
		Amount   Money
		Date     Date
	}
)

var (
	ErrMissingID       = errors.New("missing transaction id")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownCategory = errors.New("unknown category")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ISO returns the canonical YYYY-MM-DD form.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

func (d Date) Day() int   { return d.Time.Day() }
func (d Date) Month() int { return int(d.Time.Month()) }
func (d Date) Year() int  { return d.Time.Year() }

// NewDate creates a Date from year, month, day at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if !ValidCategory(t.Type, t.Category) {
		return ErrUnknownCategory
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	return t.Date.Validate()
}

// NewTransaction assigns a fresh id to an otherwise complete entry.
func NewTransaction(typ TransactionType, category string, amount Money, date Date) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Type:     typ,
		Category: category,
		Amount:   amount,
		Date:     date,
	}
}
