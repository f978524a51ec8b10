package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12.34", "12.34", false},
		{"12,34", "12.34", false},
		{" 100 ", "100", false},
		{"0", "0", false},
		{"-5", "", true},
		{"abc", "", true},
		{"", "", true},
		{"1.2.3", "", true},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q): expected error, got %s", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error %v", c.in, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestCentsRoundTrip(t *testing.T) {
	d, _ := decimal.NewFromString("12.34")
	cents := AmountToCents(d)
	if cents != 1234 {
		t.Fatalf("AmountToCents = %d, want 1234", cents)
	}
	if !CentsToAmount(cents).Equal(d) {
		t.Fatalf("CentsToAmount(%d) = %s, want %s", cents, CentsToAmount(cents), d)
	}
}

func TestAmountToCentsRounds(t *testing.T) {
	d, _ := decimal.NewFromString("1.005")
	if got := AmountToCents(d); got != 101 {
		t.Fatalf("AmountToCents(1.005) = %d, want 101", got)
	}
}

func TestTransactionValidate(t *testing.T) {
	ok := Transaction{Date: "2024-05-01", Type: Expense, Category: "Rent", Amount: decimal.NewFromInt(500)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	bad := []Transaction{
		{Date: "05/01/2024", Type: Expense, Amount: decimal.NewFromInt(1)},
		{Date: "2024-05-01", Type: "transfer", Amount: decimal.NewFromInt(1)},
		{Date: "2024-05-01", Type: Income, Amount: decimal.NewFromInt(-1)},
	}
	for i, tx := range bad {
		if err := tx.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	if err := (Budget{Month: "2024-05", Amount: decimal.NewFromInt(1000)}).Validate(); err != nil {
		t.Fatalf("valid budget rejected: %v", err)
	}
	if err := (Budget{Month: "2024-13", Amount: decimal.NewFromInt(1000)}).Validate(); err == nil {
		t.Fatal("expected invalid month error")
	}
}

func TestProgressPctZeroLimit(t *testing.T) {
	if pct := ProgressPct(decimal.NewFromInt(200), decimal.Zero); pct != 0 {
		t.Fatalf("ProgressPct with zero limit = %v, want 0", pct)
	}
	if pct := ProgressPct(decimal.NewFromInt(200), decimal.NewFromInt(1000)); pct != 20 {
		t.Fatalf("ProgressPct(200, 1000) = %v, want 20", pct)
	}
}

func TestMonthSummaryBalance(t *testing.T) {
	s := MonthSummary{Income: decimal.NewFromInt(500), Expense: decimal.NewFromInt(200)}
	if !s.Balance().Equal(decimal.NewFromInt(300)) {
		t.Fatalf("Balance = %s, want 300", s.Balance())
	}
}
