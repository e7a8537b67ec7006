package analytics

import (
	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"github.com/shopspring/decimal"
)

// Dashboard compares a snapshot against benchmarks taken from the whole active ledger.
type Dashboard struct {
	Snapshot           Snapshot
	MaxLoanValue       decimal.Decimal
	EarliestReturnDate core.Optional[core.Date]
}

// BuildDashboard pairs a snapshot with the ledger-wide benchmarks. The benchmark date
// is not required to lie in the future.
func BuildDashboard(s Snapshot, maxLoanValue decimal.Decimal, earliestReturnDate core.Optional[core.Date]) Dashboard {
	return Dashboard{
		Snapshot:           s,
		MaxLoanValue:       maxLoanValue,
		EarliestReturnDate: earliestReturnDate,
	}
}

// ImpactIndex is the average active value over the largest active value in the ledger,
// rounded half up to two places. It reports false when the benchmark is zero.
func (d Dashboard) ImpactIndex() (decimal.Decimal, bool) {
	if d.MaxLoanValue.IsZero() {
		return decimal.Zero, false
	}
	return d.Snapshot.AverageActiveValue.DivRound(d.MaxLoanValue, 2), true
}

// UrgencyIndex is UrgencyIndexAt for today's date.
func (d Dashboard) UrgencyIndex() (float64, bool) {
	return d.UrgencyIndexAt(core.Today())
}

// UrgencyIndexAt relates the days until the ledger's earliest due date to the days until
// the snapshot's earliest due date. It reports false when either date is missing.
func (d Dashboard) UrgencyIndexAt(today core.Date) (float64, bool) {
	target, ok := d.Snapshot.EarliestReturnDate.Get()
	if !ok {
		return 0, false
	}
	benchmark, ok := d.EarliestReturnDate.Get()
	if !ok {
		return 0, false
	}

	targetDays := core.DaysBetween(today, target)
	if targetDays == 0 {
		return 1.0, true
	}
	benchmarkDays := core.DaysBetween(today, benchmark)
	return float64(benchmarkDays) / float64(targetDays), true
}

// ReliabilityIndex is the share of active loans that are not overdue.
// It reports false when the snapshot has no active loans.
func (d Dashboard) ReliabilityIndex() (float64, bool) {
	if d.Snapshot.NumActive == 0 {
		return 0, false
	}
	return 1 - d.Snapshot.PropOverdue, true
}
