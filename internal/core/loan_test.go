package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testPerson(t *testing.T) *Person {
	t.Helper()
	p, err := NewPerson("Alex Yeoh", "87438807", "alexyeoh@example.com")
	if err != nil {
		t.Fatalf("NewPerson: %v", err)
	}
	return p
}

func TestNewLoanValidation(t *testing.T) {
	p := testPerson(t)
	start := NewDate(2024, time.January, 1)
	end := NewDate(2024, time.February, 1)

	cases := []struct {
		name    string
		value   string
		start   Date
		end     Date
		person  *Person
		wantErr error
	}{
		{"valid", "100.00", start, end, p, nil},
		{"zero value", "0", start, end, p, ErrInvalidValue},
		{"negative value", "-5", start, end, p, ErrInvalidValue},
		{"rounds to zero", "0.004", start, end, p, ErrInvalidValue},
		{"same day", "10", start, start, p, ErrInvalidDates},
		{"inverted dates", "10", end, start, p, ErrInvalidDates},
		{"no assignee", "10", start, end, nil, ErrMissingAssignee},
	}
	for _, tc := range cases {
		_, err := NewLoan(1, decimal.RequireFromString(tc.value), tc.start, tc.end, tc.person)
		if tc.wantErr == nil {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: expected a validation error, got %v", tc.name, err)
		}
	}
}

func TestLoanValueRoundedToCents(t *testing.T) {
	loan, err := NewLoan(1, decimal.RequireFromString("10.005"), NewDate(2024, 1, 1), NewDate(2024, 2, 1), testPerson(t))
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}
	if !loan.Value().Equal(decimal.RequireFromString("10.01")) {
		t.Fatalf("expected 10.01, got %s", loan.Value())
	}
}

func TestMarkUnmarkRoundTrip(t *testing.T) {
	p := testPerson(t)
	loan, err := NewLoan(7, decimal.NewFromInt(250), NewDate(2024, 3, 1), NewDate(2024, 4, 1), p)
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}
	before := *loan

	loan.MarkReturned()
	loan.MarkReturned()
	if !loan.IsReturned() || loan.IsActive() {
		t.Fatalf("expected loan to be returned after marking")
	}

	loan.UnmarkReturned()
	loan.UnmarkReturned()
	if !loan.IsActive() {
		t.Fatalf("expected loan to be active after unmarking")
	}
	if *loan != before {
		t.Fatalf("round trip changed loan: before %+v after %+v", before, *loan)
	}
}

func TestIsOverdueAtHasOneDayGrace(t *testing.T) {
	p := testPerson(t)
	due := NewDate(2024, time.May, 10)
	loan, err := NewLoan(1, decimal.NewFromInt(10), NewDate(2024, time.May, 1), due, p)
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}

	cases := []struct {
		today Date
		want  bool
	}{
		{due.AddDays(-1), false},
		{due, false},
		{due.AddDays(1), false},
		{due.AddDays(2), true},
	}
	for _, tc := range cases {
		if got := loan.IsOverdueAt(tc.today); got != tc.want {
			t.Fatalf("IsOverdueAt(%s) = %v, want %v", tc.today, got, tc.want)
		}
	}

	loan.MarkReturned()
	if loan.IsOverdueAt(due.AddDays(30)) {
		t.Fatalf("returned loans are never overdue")
	}
}

func TestLoanString(t *testing.T) {
	loan, err := NewLoan(1, decimal.NewFromInt(100), NewDate(2024, 1, 1), NewDate(2024, 2, 1), testPerson(t))
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}
	if got := loan.String(); got != "$100.00, 2024-01-01, 2024-02-01" {
		t.Fatalf("unexpected rendering %q", got)
	}
	loan.MarkReturned()
	if got := loan.String(); got != "$100.00, 2024-01-01, 2024-02-01 (Returned)" {
		t.Fatalf("unexpected returned rendering %q", got)
	}
}

func TestWithIDKeepsOriginal(t *testing.T) {
	loan, err := NewLoan(0, decimal.NewFromInt(5), NewDate(2024, 1, 1), NewDate(2024, 1, 2), testPerson(t))
	if err != nil {
		t.Fatalf("NewLoan: %v", err)
	}
	stamped := loan.WithID(12)
	if stamped.ID() != 12 || loan.ID() != 0 {
		t.Fatalf("expected copy with id 12 and original with id 0, got %d and %d", stamped.ID(), loan.ID())
	}
}

func TestSortLoansByReturnDateThenID(t *testing.T) {
	p := testPerson(t)
	mk := func(id int, due Date) *Loan {
		l, err := NewLoan(id, decimal.NewFromInt(1), NewDate(2020, 1, 1), due, p)
		if err != nil {
			t.Fatalf("NewLoan: %v", err)
		}
		return l
	}
	loans := []*Loan{
		mk(3, NewDate(2024, 5, 1)),
		mk(2, NewDate(2024, 3, 1)),
		mk(1, NewDate(2024, 5, 1)),
	}
	SortLoans(loans)
	got := []int{loans[0].ID(), loans[1].ID(), loans[2].ID()}
	want := []int{2, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}
