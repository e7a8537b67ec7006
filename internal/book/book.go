// Package book is the in-memory address book: contacts, their loans, and what the
// interface currently shows of them.
package book

import (
	"fmt"
	"slices"

	"git.sr.ht/~jakintosh/loanbook/internal/analytics"
	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"git.sr.ht/~jakintosh/loanbook/internal/ledger"
	"git.sr.ht/~jakintosh/loanbook/internal/log"
	"git.sr.ht/~jakintosh/loanbook/internal/storage"
	"git.sr.ht/~jakintosh/loanbook/internal/view"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event names a part of the book that changed.
type Event int

const (
	LoansChanged Event = iota
	PersonsChanged
	StateChanged
	DashboardChanged
)

func (e Event) String() string {
	switch e {
	case LoansChanged:
		return "loans"
	case PersonsChanged:
		return "persons"
	case StateChanged:
		return "state"
	case DashboardChanged:
		return "dashboard"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

type (
	PersonPredicate func(*core.Person) bool
	LoanPredicate   func(*core.Loan) bool
)

func AllPersons(*core.Person) bool { return true }
func NoPersons(*core.Person) bool { return false }
func AllLoans(*core.Loan) bool { return true }
func NoLoans(*core.Loan) bool { return false }
func ActiveLoans(l *core.Loan) bool { return l.IsActive() }

// AssignedTo accepts the loans of p.
func AssignedTo(p *core.Person) LoanPredicate {
	return func(l *core.Loan) bool { return l.IsAssignedTo(p) }
}

// Book owns the ledger and the contact list. Listeners are called synchronously,
// in the order changes are made, and must not mutate the book from inside a callback.
type Book struct {
	ledger  *ledger.Ledger
	persons []*core.Person

	personFilter PersonPredicate
	loanFilter   LoanPredicate
	state        view.State

	dashboard    analytics.Dashboard
	hasDashboard bool

	listeners []func(Event)
	logger    *log.Logger
	today     func() core.Date
}

// New returns an empty book showing the person list. A nil logger discards output.
func New(logger *log.Logger) *Book {
	if logger == nil {
		logger = log.Discard()
	}
	return &Book{
		ledger:       ledger.New(),
		personFilter: AllPersons,
		loanFilter:   NoLoans,
		state:        view.Initial(),
		logger:       logger.WithComponent(log.ComponentBook),
		today:        core.Today,
	}
}

// SetClock replaces the source of today's date used for overdue checks.
func (b *Book) SetClock(today func() core.Date) {
	b.today = today
}

func (b *Book) Today() core.Date {
	return b.today()
}

// Subscribe registers fn to be told about every change.
func (b *Book) Subscribe(fn func(Event)) {
	b.listeners = append(b.listeners, fn)
}

func (b *Book) notify(events ...Event) {
	for _, e := range events {
		for _, fn := range b.listeners {
			fn(e)
		}
	}
}

func (b *Book) State() view.State {
	return b.state
}

func (b *Book) setState(s view.State) {
	if s == b.state {
		return
	}
	b.state = s
	b.notify(StateChanged)
}

// Persons returns every contact in insertion order.
func (b *Book) Persons() []*core.Person {
	return slices.Clone(b.persons)
}

// Loans returns every loan in the ledger in insertion order. The loans are live; change
// them through MarkLoan, UnmarkLoan and DeleteLoan so listeners are told.
func (b *Book) Loans() []*core.Loan {
	return b.ledger.All()
}

func (b *Book) FindPerson(p *core.Person) bool {
	return b.indexOfPerson(p) >= 0
}

func (b *Book) indexOfPerson(p *core.Person) int {
	return slices.IndexFunc(b.persons, p.SameAs)
}

// VisiblePersons returns the contacts accepted by the current person filter.
func (b *Book) VisiblePersons() []*core.Person {
	var out []*core.Person
	for _, p := range b.persons {
		if b.personFilter(p) {
			out = append(out, p)
		}
	}
	return out
}

// VisibleLoans evaluates the current loan filter against the ledger and returns the
// accepted loans in due-date order. Loan changes since the filter was set are reflected.
func (b *Book) VisibleLoans() core.LoanList {
	var out core.LoanList
	for _, l := range b.ledger.All() {
		if b.loanFilter(l) {
			out = append(out, l)
		}
	}
	core.SortLoans(out)
	return out
}

func (b *Book) UpdateVisiblePersons(pred PersonPredicate) {
	b.personFilter = pred
	b.notify(PersonsChanged)
}

// UpdateVisibleLoans filters loans by pred, further limited to active loans unless
// the view shows all loans.
func (b *Book) UpdateVisibleLoans(pred LoanPredicate) {
	scope := ActiveLoans
	if b.state.ShowAllLoans() {
		scope = AllLoans
	}
	b.loanFilter = func(l *core.Loan) bool { return pred(l) && scope(l) }
	b.notify(LoansChanged)
}

// UpdateVisibleLoansShowAll sets whether returned loans are shown, then filters by pred.
func (b *Book) UpdateVisibleLoansShowAll(pred LoanPredicate, showAll bool) {
	b.setState(b.state.WithShowAllLoans(showAll))
	b.UpdateVisibleLoans(pred)
}

func (b *Book) ShowLoansTab() {
	b.setState(b.state.WithLoansTab(true))
}

// ShowAnalyticsTab switches to the dashboard, which replaces both lists.
func (b *Book) ShowAnalyticsTab() {
	b.UpdateVisiblePersons(NoPersons)
	b.UpdateVisibleLoans(NoLoans)
	b.setState(b.state.WithAnalyticsTab(true))
}

// ShowPersonTab shows the contact list alone.
func (b *Book) ShowPersonTab() {
	b.UpdateVisibleLoans(NoLoans)
	b.setState(b.state.PersonOnly())
}

func (b *Book) ShowDualPanel() {
	b.setState(b.state.DualPanel())
}

func (b *Book) SetShowLoaneeInfo(on bool) {
	b.setState(b.state.WithShowLoaneeInfo(on))
}

// GenerateDashboard pairs s with benchmarks from the whole ledger, ignoring the current filters.
func (b *Book) GenerateDashboard(s analytics.Snapshot) analytics.Dashboard {
	b.dashboard = analytics.BuildDashboard(s, b.ledger.MaxActiveValue(), b.ledger.EarliestActiveReturnDate())
	b.hasDashboard = true
	b.notify(DashboardChanged)
	return b.dashboard
}

// Dashboard returns the last generated dashboard.
func (b *Book) Dashboard() (analytics.Dashboard, bool) {
	return b.dashboard, b.hasDashboard
}

// AddPerson adds p to the contact list and shows every contact.
func (b *Book) AddPerson(p *core.Person) error {
	if p == nil {
		return fmt.Errorf("%w: person is nil", core.ErrValidation)
	}
	if b.FindPerson(p) {
		return fmt.Errorf("%w %s", core.ErrDuplicatePersonID, p.ID)
	}
	b.persons = append(b.persons, p)
	b.logger.Debug("person added", log.FieldOperation, log.OpAdd, log.FieldPersonID, p.ID)
	b.UpdateVisiblePersons(AllPersons)
	return nil
}

// LinkLoan records a new loan to p and returns it with its assigned id.
func (b *Book) LinkLoan(value decimal.Decimal, start, ret core.Date, p *core.Person) (*core.Loan, error) {
	if p == nil || !b.FindPerson(p) {
		return nil, core.ErrPersonNotFound
	}
	loan, err := b.ledger.AddFromDescriptor(value, start, ret, p)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("loan linked",
		log.FieldOperation, log.OpLink,
		log.FieldLoanID, loan.ID(),
		log.FieldPersonID, p.ID,
		log.FieldValue, loan.Value().StringFixed(2))
	b.notify(LoansChanged)
	return loan, nil
}

func (b *Book) DeleteLoan(loan *core.Loan) error {
	if err := b.ledger.Remove(loan); err != nil {
		return err
	}
	b.logger.Debug("loan deleted", log.FieldOperation, log.OpDelete, log.FieldLoanID, loan.ID())
	b.notify(LoansChanged)
	return nil
}

func (b *Book) MarkLoan(loan *core.Loan) error {
	if loan == nil {
		return fmt.Errorf("%w: loan is nil", core.ErrValidation)
	}
	if _, err := b.ledger.MarkReturned(loan.ID()); err != nil {
		return err
	}
	b.logger.Debug("loan marked", log.FieldOperation, log.OpMark, log.FieldLoanID, loan.ID())
	b.notify(LoansChanged)
	return nil
}

func (b *Book) UnmarkLoan(loan *core.Loan) error {
	if loan == nil {
		return fmt.Errorf("%w: loan is nil", core.ErrValidation)
	}
	if _, err := b.ledger.UnmarkReturned(loan.ID()); err != nil {
		return err
	}
	b.logger.Debug("loan unmarked", log.FieldOperation, log.OpUnmark, log.FieldLoanID, loan.ID())
	b.notify(LoansChanged)
	return nil
}

// ReplaceAll swaps in a new set of contacts and loans. Nothing changes unless every
// loan's assignee is among persons and both sets are free of duplicate ids.
func (b *Book) ReplaceAll(persons []*core.Person, loans []*core.Loan) error {
	seen := make(map[uuid.UUID]struct{}, len(persons))
	for _, p := range persons {
		if p == nil {
			return fmt.Errorf("%w: person is nil", core.ErrValidation)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w %s", core.ErrDuplicatePersonID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	for _, l := range loans {
		if l == nil {
			return fmt.Errorf("%w: loan is nil", core.ErrValidation)
		}
		if _, ok := seen[l.Assignee().ID]; !ok {
			return fmt.Errorf("%w: loan %d is assigned to an unknown person", core.ErrValidation, l.ID())
		}
	}

	if err := b.ledger.ReplaceAll(loans); err != nil {
		return err
	}
	b.persons = slices.Clone(persons)
	b.logger.Info("book replaced", log.FieldCount, len(loans))
	b.notify(PersonsChanged, LoansChanged)
	return nil
}

// Snapshot returns the persisted form of the book.
func (b *Book) Snapshot() storage.Data {
	return storage.Encode(b.persons, b.ledger.All())
}

// Restore replaces the book's contents with data.
func (b *Book) Restore(data storage.Data) error {
	persons, loans, err := data.Decode()
	if err != nil {
		return err
	}
	return b.ReplaceAll(persons, loans)
}
