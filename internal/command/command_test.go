package command

import (
	"errors"
	"strings"
	"testing"
	"time"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"github.com/shopspring/decimal"
)

var today = core.NewDate(2024, time.June, 15)

func run(t *testing.T, b *book.Book, c Command) Result {
	t.Helper()
	res, err := c.Execute(b)
	if err != nil {
		t.Fatalf("%T: %v", c, err)
	}
	return res
}

// newBook holds Alex with loans of 100, 200 and 300 and Bernice with none.
func newBook(t *testing.T) *book.Book {
	t.Helper()
	b := book.New(nil)
	b.SetClock(func() core.Date { return today })

	run(t, b, Add{Name: "Alex Yeoh", Phone: "87438807"})
	run(t, b, Add{Name: "Bernice Yu"})
	for i, v := range []int64{100, 200, 300} {
		run(t, b, List{})
		run(t, b, LinkLoan{
			Person:     1,
			Value:      decimal.NewFromInt(v),
			StartDate:  core.NewDate(2024, 1, 1),
			ReturnDate: today.AddDays(10 * (i + 1)),
		})
	}
	run(t, b, List{})
	return b
}

func TestAddShowsPersonTab(t *testing.T) {
	b := book.New(nil)
	res := run(t, b, Add{Name: "Charlotte", Email: "charlotte@example.com"})
	if !strings.Contains(res.Feedback, "Charlotte; Email: charlotte@example.com") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	if len(b.VisiblePersons()) != 1 || !b.State().PersonTab() {
		t.Fatalf("expected person tab with one person")
	}
	if _, err := (Add{Name: "  "}).Execute(b); !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLinkLoanShowsPersonLoans(t *testing.T) {
	b := newBook(t)
	res := run(t, b, LinkLoan{
		Person: 2, Value: decimal.NewFromInt(50),
		StartDate: core.NewDate(2024, 1, 1), ReturnDate: core.NewDate(2024, 2, 1),
	})
	if !strings.Contains(res.Feedback, "$50.00, 2024-01-01, 2024-02-01") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	s := b.State()
	if !s.PersonTab() || !s.LoansTab() {
		t.Fatalf("expected dual panel, got %s", s)
	}
	if len(b.VisibleLoans()) != 1 || b.VisibleLoans()[0].ID() != 4 {
		t.Fatalf("expected the new loan to be visible")
	}
}

func TestLinkLoanInvalid(t *testing.T) {
	b := newBook(t)
	before := len(b.Loans())

	_, err := LinkLoan{Person: 1, Value: decimal.NewFromInt(10), StartDate: today, ReturnDate: today}.Execute(b)
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = LinkLoan{Person: 9, Value: decimal.NewFromInt(10), StartDate: today, ReturnDate: today.AddDays(1)}.Execute(b)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(b.Loans()) != before {
		t.Fatalf("failed commands changed the ledger")
	}
}

func TestMarkAndUnmarkLoan(t *testing.T) {
	b := newBook(t)
	run(t, b, ViewLoan{Person: 1, ShowAll: true})

	res := run(t, b, MarkLoan{Loan: 1})
	if !strings.HasPrefix(res.Feedback, "Loan marked.") || !strings.Contains(res.Feedback, "(Returned)") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	// marking twice is harmless
	run(t, b, MarkLoan{Loan: 1})

	res = run(t, b, UnmarkLoan{Loan: 1})
	if strings.Contains(res.Feedback, "(Returned)") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	for _, l := range b.Loans() {
		if l.IsReturned() {
			t.Fatalf("loan %d still returned", l.ID())
		}
	}
}

func TestMarkLoanOutOfRange(t *testing.T) {
	b := newBook(t)
	run(t, b, ViewLoan{Person: 1})
	for _, c := range []Command{MarkLoan{Loan: 4}, UnmarkLoan{Loan: 4}, DeleteLoan{Loan: 4}, EditLoan{Loan: 4}} {
		if _, err := c.Execute(b); !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("%T: expected not found, got %v", c, err)
		}
	}
}

func TestMarkedLoanLeavesActiveView(t *testing.T) {
	b := newBook(t)
	run(t, b, ViewLoan{Person: 1})
	run(t, b, MarkLoan{Loan: 1})
	if got := len(b.VisibleLoans()); got != 2 {
		t.Fatalf("expected 2 active loans visible, got %d", got)
	}
}

func TestDeleteLoan(t *testing.T) {
	b := newBook(t)
	run(t, b, ViewLoans{})
	res := run(t, b, DeleteLoan{Loan: 2})
	if !strings.Contains(res.Feedback, "$200.00") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	if len(b.Loans()) != 2 {
		t.Fatalf("expected 2 loans left")
	}
}

func TestEditLoan(t *testing.T) {
	b := newBook(t)
	run(t, b, ViewLoans{ShowAll: true})
	run(t, b, MarkLoan{Loan: 1})

	res := run(t, b, EditLoan{Loan: 1, Value: core.Some(decimal.NewFromInt(150))})
	if !strings.Contains(res.Feedback, "$150.00") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}

	var edited *core.Loan
	for _, l := range b.Loans() {
		if l.Value().Equal(decimal.NewFromInt(150)) {
			edited = l
		}
	}
	if edited == nil {
		t.Fatalf("edited loan not found")
	}
	if edited.ID() != 4 {
		t.Fatalf("expected the edited loan to get id 4, got %d", edited.ID())
	}
	if !edited.IsReturned() || !edited.StartDate().Equal(core.NewDate(2024, 1, 1)) {
		t.Fatalf("unedited fields should carry over: %s", edited)
	}
}

func TestEditLoanInvalidDatesLeavesLoan(t *testing.T) {
	b := newBook(t)
	run(t, b, ViewLoans{})
	before := b.VisibleLoans()[0]

	_, err := EditLoan{Loan: 1, StartDate: core.Some(before.ReturnDate().AddDays(1))}.Execute(b)
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(b.Loans()) != 3 || b.VisibleLoans()[0] != before {
		t.Fatalf("loan changed after rejected edit")
	}
}

func TestViewLoan(t *testing.T) {
	b := newBook(t)
	res := run(t, b, ViewLoan{Person: 1})
	if !strings.HasPrefix(res.Feedback, "Listed all loans associated with: Alex Yeoh") {
		t.Fatalf("unexpected feedback %q", res.Feedback)
	}
	s := b.State()
	if !s.PersonTab() || !s.LoansTab() || s.ShowLoaneeInfo() || s.ShowAllLoans() {
		t.Fatalf("unexpected state %s", s)
	}
	if len(b.VisiblePersons()) != 1 || len(b.VisibleLoans()) != 3 {
		t.Fatalf("expected one person and three loans")
	}

	if _, err := (ViewLoan{Person: 5}).Execute(b); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestViewLoans(t *testing.T) {
	b := newBook(t)
	run(t, b, ViewLoan{Person: 1})
	run(t, b, MarkLoan{Loan: 1})

	run(t, b, ViewLoans{})
	s := b.State()
	if !s.LoansTab() || s.AnalyticsTab() || !s.ShowLoaneeInfo() {
		t.Fatalf("unexpected state %s", s)
	}
	if len(b.VisibleLoans()) != 2 {
		t.Fatalf("expected active loans only")
	}

	run(t, b, ViewLoans{ShowAll: true})
	if len(b.VisibleLoans()) != 3 || !b.State().ShowAllLoans() {
		t.Fatalf("expected every loan")
	}
}

func TestAnalytics(t *testing.T) {
	b := newBook(t)
	res := run(t, b, Analytics{Person: 1})

	if !b.State().AnalyticsTab() || b.State().LoansTab() {
		t.Fatalf("expected analytics tab, got %s", b.State())
	}
	if len(b.VisiblePersons()) != 0 || len(b.VisibleLoans()) != 0 {
		t.Fatalf("analytics should empty both lists")
	}
	d, ok := b.Dashboard()
	if !ok || d.Snapshot.NumActive != 3 {
		t.Fatalf("expected a dashboard over 3 active loans")
	}
	for _, want := range []string{"Reliability: 100.00%", "Impact: 67.00%", "Urgency: 100.00%"} {
		if !strings.Contains(res.Feedback, want) {
			t.Errorf("expected %q in %q", want, res.Feedback)
		}
	}

	if _, err := (Analytics{Person: 1}).Execute(b); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("analytics hides every person, expected not found, got %v", err)
	}
}

func TestAnalyticsWithoutLoans(t *testing.T) {
	b := newBook(t)
	res := run(t, b, Analytics{Person: 2})
	for _, want := range []string{"no active loans", "Impact: 0.00%", "no due loans"} {
		if !strings.Contains(res.Feedback, want) {
			t.Errorf("expected %q in %q", want, res.Feedback)
		}
	}
}

func TestHelpAndExit(t *testing.T) {
	b := book.New(nil)
	res := run(t, b, Help{})
	for _, w := range Words {
		if !strings.Contains(res.Feedback, w+":") {
			t.Errorf("help is missing %s", w)
		}
	}
	if res := run(t, b, Exit{}); !res.Exit {
		t.Fatalf("expected exit")
	}
}

func TestResultReportsChanges(t *testing.T) {
	b := newBook(t)

	if res := run(t, b, ViewLoans{}); res.Changed {
		t.Fatalf("viewloans should not report a change")
	}
	if res := run(t, b, MarkLoan{Loan: 1}); !res.Changed {
		t.Fatalf("markloan should report a change")
	}
	if res := run(t, b, List{}); res.Changed {
		t.Fatalf("list should not report a change")
	}
	if res := run(t, b, Add{Name: "Charlotte"}); !res.Changed {
		t.Fatalf("add should report a change")
	}
}
