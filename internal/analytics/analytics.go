package analytics

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"github.com/shopspring/decimal"
)

// Source is a read-only sequence of loans.
type Source interface {
	Len() int
	At(i int) *core.Loan
}

// Snapshot is an aggregate of a loan sequence taken at one point in time.
// It holds copies of every value and does not follow later changes to the loans.
type Snapshot struct {
	NumLoans   int
	NumOverdue int
	NumActive  int

	// PropActive is active over total loans.
	PropActive float64
	// PropOverdue is overdue over active loans.
	PropOverdue float64

	TotalValue        decimal.Decimal
	TotalOverdueValue decimal.Decimal
	TotalActiveValue  decimal.Decimal

	AverageValue        decimal.Decimal
	AverageOverdueValue decimal.Decimal
	AverageActiveValue  decimal.Decimal

	// Start dates span all loans; return dates span active loans only.
	EarliestLoanDate   core.Optional[core.Date]
	LatestLoanDate     core.Optional[core.Date]
	EarliestReturnDate core.Optional[core.Date]
	LatestReturnDate   core.Optional[core.Date]
}

// Compute aggregates src using today's date for overdue checks.
func Compute(src Source) (Snapshot, error) {
	return ComputeAt(src, core.Today())
}

// ComputeAt aggregates src in a single pass, treating today as the current date.
func ComputeAt(src Source, today core.Date) (Snapshot, error) {
	if src == nil {
		return Snapshot{}, core.ErrNilSource
	}

	s := Snapshot{
		TotalValue:          decimal.Zero,
		TotalOverdueValue:   decimal.Zero,
		TotalActiveValue:    decimal.Zero,
		AverageValue:        decimal.Zero,
		AverageOverdueValue: decimal.Zero,
		AverageActiveValue:  decimal.Zero,
	}

	var earliestStart, latestStart, earliestReturn, latestReturn *core.Date
	for i := 0; i < src.Len(); i++ {
		loan := src.At(i)
		if loan == nil {
			return Snapshot{}, fmt.Errorf("%w: loan at position %d is nil", core.ErrValidation, i)
		}

		overdue := loan.IsOverdueAt(today)
		active := loan.IsActive()

		s.NumLoans++
		s.TotalValue = s.TotalValue.Add(loan.Value())
		if overdue {
			s.NumOverdue++
			s.TotalOverdueValue = s.TotalOverdueValue.Add(loan.Value())
		}
		if active {
			s.NumActive++
			s.TotalActiveValue = s.TotalActiveValue.Add(loan.Value())
		}

		start := loan.StartDate()
		if earliestStart == nil || start.Before(*earliestStart) {
			earliestStart = &start
		}
		if latestStart == nil || start.After(*latestStart) {
			latestStart = &start
		}
		if active {
			due := loan.ReturnDate()
			if earliestReturn == nil || due.Before(*earliestReturn) {
				earliestReturn = &due
			}
			if latestReturn == nil || due.After(*latestReturn) {
				latestReturn = &due
			}
		}
	}

	if s.NumLoans > 0 {
		s.PropActive = float64(s.NumActive) / float64(s.NumLoans)
	}
	if s.NumActive > 0 {
		s.PropOverdue = float64(s.NumOverdue) / float64(s.NumActive)
	}

	s.AverageValue = average(s.TotalValue, s.NumLoans)
	s.AverageOverdueValue = average(s.TotalOverdueValue, s.NumOverdue)
	s.AverageActiveValue = average(s.TotalActiveValue, s.NumActive)

	s.EarliestLoanDate = optionalDate(earliestStart)
	s.LatestLoanDate = optionalDate(latestStart)
	s.EarliestReturnDate = optionalDate(earliestReturn)
	s.LatestReturnDate = optionalDate(latestReturn)

	return s, nil
}

// average divides total by count, rounding half up to cents.
func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), 2)
}

func optionalDate(d *core.Date) core.Optional[core.Date] {
	if d == nil {
		return core.None[core.Date]()
	}
	return core.Some(*d)
}

func formatDate(o core.Optional[core.Date]) string {
	if d, ok := o.Get(); ok {
		return d.String()
	}
	return "-"
}

// String renders the snapshot as one labelled line per field.
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Number of loans: %d\n", s.NumLoans)
	fmt.Fprintf(&b, "Number of overdue loans: %d\n", s.NumOverdue)
	fmt.Fprintf(&b, "Number of active loans: %d\n", s.NumActive)
	fmt.Fprintf(&b, "Proportion of overdue loans: %.2f\n", s.PropOverdue)
	fmt.Fprintf(&b, "Proportion of active loans: %.2f\n", s.PropActive)
	fmt.Fprintf(&b, "Total value loaned: $%s\n", s.TotalValue.StringFixed(2))
	fmt.Fprintf(&b, "Total value of overdue loans: $%s\n", s.TotalOverdueValue.StringFixed(2))
	fmt.Fprintf(&b, "Total value of active loans: $%s\n", s.TotalActiveValue.StringFixed(2))
	fmt.Fprintf(&b, "Average loan value: $%s\n", s.AverageValue.StringFixed(2))
	fmt.Fprintf(&b, "Average value of overdue loans: $%s\n", s.AverageOverdueValue.StringFixed(2))
	fmt.Fprintf(&b, "Average value of active loans: $%s\n", s.AverageActiveValue.StringFixed(2))
	fmt.Fprintf(&b, "Earliest loan date: %s\n", formatDate(s.EarliestLoanDate))
	fmt.Fprintf(&b, "Earliest return date: %s\n", formatDate(s.EarliestReturnDate))
	fmt.Fprintf(&b, "Latest loan date: %s\n", formatDate(s.LatestLoanDate))
	fmt.Fprintf(&b, "Latest return date: %s", formatDate(s.LatestReturnDate))
	return b.String()
}
