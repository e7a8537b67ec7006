package command

import (
	"fmt"
	"strings"

	"git.sr.ht/~jakintosh/loanbook/internal/analytics"
	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/core"
)

const (
	ViewLoanWord  = "viewloan"
	ViewLoansWord = "viewloans"
	AnalyticsWord = "analytics"
	HelpWord      = "help"
	ExitWord      = "exit"

	// ShowAllFlag includes returned loans.
	ShowAllFlag = "-a"

	ViewLoanUsage = ViewLoanWord + ": Shows the loans of the person at INDEX in the displayed person list.\n" +
		"Parameters: [INDEX] [-a]\nExample: " + ViewLoanWord + " 1 -a"
	ViewLoansUsage = ViewLoansWord + ": Shows every loan. Parameters: [-a]"
	AnalyticsUsage = AnalyticsWord + ": Shows analytics for the active loans of the person at INDEX.\nParameters: INDEX\nExample: " + AnalyticsWord + " 1"
	HelpUsage      = HelpWord + ": Shows this message."
	ExitUsage      = ExitWord + ": Saves and quits."
)

// ViewLoan shows a displayed person next to their loans.
type ViewLoan struct {
	Person  Index
	ShowAll bool
}

func (c ViewLoan) Execute(b *book.Book) (Result, error) {
	p, err := personAt(b, c.Person)
	if err != nil {
		return Result{}, err
	}
	b.UpdateVisiblePersons(samePerson(p))
	b.UpdateVisibleLoansShowAll(book.AssignedTo(p), c.ShowAll)
	b.ShowDualPanel()
	b.SetShowLoaneeInfo(false)
	return Result{Feedback: fmt.Sprintf("Listed all loans associated with: %s", p)}, nil
}

// ViewLoans shows the whole ledger with each loan's assignee.
type ViewLoans struct {
	ShowAll bool
}

func (c ViewLoans) Execute(b *book.Book) (Result, error) {
	b.UpdateVisibleLoansShowAll(book.AllLoans, c.ShowAll)
	b.ShowLoansTab()
	b.SetShowLoaneeInfo(true)
	return Result{Feedback: "Listed all loans"}, nil
}

// Analytics summarises the active loans of a displayed person.
type Analytics struct {
	Person Index
}

func (c Analytics) Execute(b *book.Book) (Result, error) {
	p, err := personAt(b, c.Person)
	if err != nil {
		return Result{}, err
	}

	assigned := book.AssignedTo(p)
	b.UpdateVisibleLoans(func(l *core.Loan) bool { return assigned(l) && l.IsActive() })
	snapshot, err := analytics.ComputeAt(b.VisibleLoans(), b.Today())
	if err != nil {
		return Result{}, err
	}
	d := b.GenerateDashboard(snapshot)
	b.ShowAnalyticsTab()

	return Result{Feedback: "Analytics generated for " + p.Name + "\n" + FormatDashboard(d, b.Today())}, nil
}

// FormatDashboard renders the three indices as percentages.
func FormatDashboard(d analytics.Dashboard, today core.Date) string {
	var lines []string
	if r, ok := d.ReliabilityIndex(); ok {
		lines = append(lines, fmt.Sprintf("Reliability: %.2f%%", r*100))
	} else {
		lines = append(lines, "Reliability: no active loans to analyze")
	}
	if i, ok := d.ImpactIndex(); ok {
		lines = append(lines, fmt.Sprintf("Impact: %s%%", i.Shift(2).StringFixed(2)))
	} else {
		lines = append(lines, "Impact: no loans to analyze")
	}
	if u, ok := d.UrgencyIndexAt(today); ok {
		lines = append(lines, fmt.Sprintf("Urgency: %.2f%%", u*100))
	} else {
		lines = append(lines, "Urgency: no due loans to analyze")
	}
	return strings.Join(lines, "\n")
}

type Help struct{}

// Usages lists every command's usage in display order.
var Usages = []string{
	AddUsage, ListUsage, LinkLoanUsage, MarkLoanUsage, UnmarkLoanUsage, DeleteLoanUsage,
	EditLoanUsage, ViewLoanUsage, ViewLoansUsage, AnalyticsUsage, HelpUsage, ExitUsage,
}

// Words lists every command word.
var Words = []string{
	AddWord, ListWord, LinkLoanWord, MarkLoanWord, UnmarkLoanWord, DeleteLoanWord,
	EditLoanWord, ViewLoanWord, ViewLoansWord, AnalyticsWord, HelpWord, ExitWord,
}

func (Help) Execute(*book.Book) (Result, error) {
	return Result{Feedback: strings.Join(Usages, "\n\n")}, nil
}

type Exit struct{}

func (Exit) Execute(*book.Book) (Result, error) {
	return Result{Feedback: "Exiting loanbook as requested ...", Exit: true}, nil
}
