// Package ledger owns the loan records of a book: it allocates identifiers, keeps them
// unique and is the only place loans are added, removed or bulk loaded.
package ledger

import (
	"fmt"

	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// firstID is the identifier handed to the first loan of an empty ledger.
const firstID = 1

// Ledger is the authoritative, ordered collection of loans. Identifiers are never reused:
// the counter only moves forward, including across removals and bulk loads.
type Ledger struct {
	loans  []*core.Loan
	nextID int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{nextID: firstID}
}

// NextID returns the identifier the next new loan will receive.
func (l *Ledger) NextID() int {
	return l.nextID
}

// Add appends loan. A loan without an identifier (id 0) is stamped with the next one.
// An explicit identifier must not have been issued yet, so ids of removed loans are
// never reused; ReplaceAll is the only way to load arbitrary ids.
// The stored loan is returned so callers can report exactly what was recorded.
func (l *Ledger) Add(loan *core.Loan) (*core.Loan, error) {
	if loan == nil {
		return nil, fmt.Errorf("%w: nil loan", core.ErrValidation)
	}
	if loan.ID() == 0 {
		loan = loan.WithID(l.nextID)
	} else if loan.ID() < l.nextID {
		return nil, fmt.Errorf("%w %d: already issued", core.ErrDuplicateLoanID, loan.ID())
	}
	l.loans = append(l.loans, loan)
	l.advance(loan.ID())
	return loan, nil
}

// AddFromDescriptor allocates an identifier, builds the loan and appends it.
func (l *Ledger) AddFromDescriptor(value decimal.Decimal, startDate, returnDate core.Date, assignee *core.Person) (*core.Loan, error) {
	loan, err := core.NewLoan(l.nextID, value, startDate, returnDate, assignee)
	if err != nil {
		return nil, err
	}
	return l.Add(loan)
}

// Remove deletes the loan with the same identifier as loan.
func (l *Ledger) Remove(loan *core.Loan) error {
	if loan == nil {
		return fmt.Errorf("%w: nil loan", core.ErrValidation)
	}
	i := l.indexOf(loan.ID())
	if i < 0 {
		return fmt.Errorf("%w %d", core.ErrLoanNotFound, loan.ID())
	}
	l.loans = append(l.loans[:i], l.loans[i+1:]...)
	return nil
}

// FindByID returns the loan with identifier id.
// Loans handed out by FindByID, At and All are the stored loans, not copies: they see
// later changes, and callers change them only through MarkReturned and UnmarkReturned.
func (l *Ledger) FindByID(id int) (*core.Loan, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.loans[i], true
	}
	return nil, false
}

// Contains reports whether a loan with identifier id is present.
func (l *Ledger) Contains(id int) bool {
	return l.indexOf(id) >= 0
}

// MarkReturned marks the loan with identifier id as returned.
func (l *Ledger) MarkReturned(id int) (*core.Loan, error) {
	loan, ok := l.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w %d", core.ErrLoanNotFound, id)
	}
	loan.MarkReturned()
	return loan, nil
}

// UnmarkReturned marks the loan with identifier id as outstanding.
func (l *Ledger) UnmarkReturned(id int) (*core.Loan, error) {
	loan, ok := l.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w %d", core.ErrLoanNotFound, id)
	}
	loan.UnmarkReturned()
	return loan, nil
}

// ReplaceAll swaps the ledger contents for loans. Either every loan is taken or, when two
// share an identifier, none is. The counter moves to at least max(id)+1 and never back.
func (l *Ledger) ReplaceAll(loans []*core.Loan) error {
	seen := make(map[int]struct{}, len(loans))
	for _, loan := range loans {
		if loan == nil {
			return fmt.Errorf("%w: nil loan", core.ErrValidation)
		}
		if _, dup := seen[loan.ID()]; dup {
			return fmt.Errorf("%w %d", core.ErrDuplicateLoanID, loan.ID())
		}
		seen[loan.ID()] = struct{}{}
	}

	l.loans = append([]*core.Loan(nil), loans...)
	for _, loan := range loans {
		l.advance(loan.ID())
	}
	return nil
}

// Len returns the number of loans.
func (l *Ledger) Len() int {
	return len(l.loans)
}

// At returns the stored loan at position i in insertion order.
func (l *Ledger) At(i int) *core.Loan {
	return l.loans[i]
}

// All returns a copy of the loan sequence. Changing the returned slice does not change
// the ledger; the loans in it are the stored ones.
func (l *Ledger) All() []*core.Loan {
	out := make([]*core.Loan, len(l.loans))
	copy(out, l.loans)
	return out
}

// LoansOf returns the loans assigned to the person with identifier personID.
func (l *Ledger) LoansOf(personID uuid.UUID) []*core.Loan {
	var out []*core.Loan
	for _, loan := range l.loans {
		if loan.Assignee().ID == personID {
			out = append(out, loan)
		}
	}
	return out
}

// MaxActiveValue returns the largest value among unreturned loans, or zero when there are none.
func (l *Ledger) MaxActiveValue() decimal.Decimal {
	largest := decimal.Zero
	for _, loan := range l.loans {
		if loan.IsActive() && loan.Value().GreaterThan(largest) {
			largest = loan.Value()
		}
	}
	return largest
}

// EarliestActiveReturnDate returns the soonest return date among unreturned loans.
func (l *Ledger) EarliestActiveReturnDate() core.Optional[core.Date] {
	earliest := core.None[core.Date]()
	for _, loan := range l.loans {
		if !loan.IsActive() {
			continue
		}
		if cur, ok := earliest.Get(); !ok || loan.ReturnDate().Before(cur) {
			earliest = core.Some(loan.ReturnDate())
		}
	}
	return earliest
}

// Equal reports whether both ledgers hold the same set of loan identifiers. Loan contents
// are not compared.
func (l *Ledger) Equal(other *Ledger) bool {
	if l == other {
		return true
	}
	if other == nil || l == nil {
		return false
	}
	mine := l.idSet()
	theirs := other.idSet()
	if len(mine) != len(theirs) {
		return false
	}
	for id := range mine {
		if _, ok := theirs[id]; !ok {
			return false
		}
	}
	return true
}

func (l *Ledger) idSet() map[int]struct{} {
	ids := make(map[int]struct{}, len(l.loans))
	for _, loan := range l.loans {
		ids[loan.ID()] = struct{}{}
	}
	return ids
}

func (l *Ledger) indexOf(id int) int {
	for i, loan := range l.loans {
		if loan.ID() == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) advance(id int) {
	if id+1 > l.nextID {
		l.nextID = id + 1
	}
}
