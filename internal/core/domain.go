package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is a single income or expense record. Category is a
	// free-form string; it conventionally matches a stored Category name
	// but nothing enforces that.
	Transaction struct {
		ID       int64           `json:"id,omitempty"`
		Date     string          `json:"date"` // YYYY-MM-DD
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Amount   decimal.Decimal `json:"amount"`
		Notes    string          `json:"notes"`
	}

	Category struct {
		ID   int64  `json:"id,omitempty"`
		Name string `json:"name"`
	}

	// Budget is a monthly spending limit, unique per month.
	Budget struct {
		ID     int64           `json:"id,omitempty"`
		Month  string          `json:"month"` // YYYY-MM
		Amount decimal.Decimal `json:"amount"`
	}

	// Goal tracks saving progress toward a target amount.
	Goal struct {
		ID      int64           `json:"id,omitempty"`
		Name    string          `json:"name"`
		Target  decimal.Decimal `json:"target"`
		Current decimal.Decimal `json:"current"`
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
)

// ValidateDate checks a YYYY-MM-DD date string.
func ValidateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// ValidateMonth checks a YYYY-MM month string.
func ValidateMonth(s string) error {
	if _, err := time.Parse("2006-01", s); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// CurrentMonth returns the current calendar month as YYYY-MM.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (t Transaction) Validate() error {
	if err := ValidateDate(t.Date); err != nil {
		return err
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (b Budget) Validate() error {
	if err := ValidateMonth(b.Month); err != nil {
		return err
	}
	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.Target.IsNegative() || g.Current.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}
