package core

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// valuePlaces is the number of fractional digits loan values are rounded to.
const valuePlaces = 2

// Loan records one amount lent to a person. The identifier, value, dates and assignee are
// fixed at construction; only the return status changes afterwards. Two loans are the same
// loan exactly when their identifiers match.
type Loan struct {
	id         int
	value      decimal.Decimal
	startDate  Date
	returnDate Date
	returned   bool
	assignee   *Person
}

// NewLoan creates an unreturned loan.
func NewLoan(id int, value decimal.Decimal, startDate, returnDate Date, assignee *Person) (*Loan, error) {
	return RestoreLoan(id, value, startDate, returnDate, false, assignee)
}

// RestoreLoan creates a loan with a known return status, as read back from storage.
func RestoreLoan(id int, value decimal.Decimal, startDate, returnDate Date, returned bool, assignee *Person) (*Loan, error) {
	if assignee == nil {
		return nil, ErrMissingAssignee
	}
	value = value.Round(valuePlaces)
	if !IsValidValue(value) {
		return nil, ErrInvalidValue
	}
	if !IsValidDates(startDate, returnDate) {
		return nil, ErrInvalidDates
	}
	return &Loan{
		id:         id,
		value:      value,
		startDate:  startDate,
		returnDate: returnDate,
		returned:   returned,
		assignee:   assignee,
	}, nil
}

// IsValidValue reports whether value can be lent.
func IsValidValue(value decimal.Decimal) bool {
	return value.IsPositive()
}

// IsValidDates reports whether a loan may start on start and be due on ret.
func IsValidDates(start, ret Date) bool {
	return start.Before(ret)
}

// WithID returns a copy of the loan carrying id. The ledger uses it to stamp loans
// that were built before an identifier was allocated.
func (l *Loan) WithID(id int) *Loan {
	c := *l
	c.id = id
	return &c
}

func (l *Loan) ID() int { return l.id }
func (l *Loan) Value() decimal.Decimal { return l.value }
func (l *Loan) StartDate() Date { return l.startDate }
func (l *Loan) ReturnDate() Date { return l.returnDate }
func (l *Loan) Assignee() *Person { return l.assignee }
func (l *Loan) IsReturned() bool { return l.returned }

// IsActive reports whether the loan is still outstanding.
func (l *Loan) IsActive() bool {
	return !l.returned
}

// IsAssignedTo reports whether the loan belongs to person.
func (l *Loan) IsAssignedTo(person *Person) bool {
	return l.assignee.SameAs(person)
}

// IsOverdue reports whether the loan is overdue today.
func (l *Loan) IsOverdue() bool {
	return l.IsOverdueAt(Today())
}

// IsOverdueAt reports whether the loan is unreturned and today is past the day after
// the return date.
func (l *Loan) IsOverdueAt(today Date) bool {
	return !l.returned && today.After(l.returnDate.AddDays(1))
}

// MarkReturned records the loan as returned. Repeated calls are harmless.
// Loans held by a ledger are marked through the ledger, never directly.
func (l *Loan) MarkReturned() {
	l.returned = true
}

// UnmarkReturned records the loan as outstanding again. Repeated calls are harmless.
func (l *Loan) UnmarkReturned() {
	l.returned = false
}

// String renders the loan as "$VALUE, START, RETURN" with a returned suffix.
func (l *Loan) String() string {
	s := fmt.Sprintf("$%s, %s, %s", l.value.StringFixed(valuePlaces), l.startDate, l.returnDate)
	if l.returned {
		s += " (Returned)"
	}
	return s
}

// LoanList is a plain sequence of loans.
type LoanList []*Loan

func (ll LoanList) Len() int { return len(ll) }
func (ll LoanList) At(i int) *Loan { return ll[i] }

// SortLoans orders loans by return date, then by id.
func SortLoans(loans []*Loan) {
	sort.SliceStable(loans, func(i, j int) bool {
		a, b := loans[i], loans[j]
		if !a.returnDate.Equal(b.returnDate) {
			return a.returnDate.Before(b.returnDate)
		}
		return a.id < b.id
	})
}
