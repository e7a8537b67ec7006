package command

import (
	"fmt"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"github.com/shopspring/decimal"
)

const (
	LinkLoanWord   = "linkloan"
	MarkLoanWord   = "markloan"
	UnmarkLoanWord = "unmarkloan"
	DeleteLoanWord = "deleteloan"
	EditLoanWord   = "editloan"

	LinkLoanUsage = LinkLoanWord + ": Links a loan to the person at INDEX in the displayed person list.\n" +
		"Parameters: INDEX v/VALUE s/START_DATE r/RETURN_DATE\n" +
		"Example: " + LinkLoanWord + " 1 v/500.00 s/2024-02-15 r/2024-04-21"
	MarkLoanUsage = MarkLoanWord + ": Marks the loan at INDEX in the displayed loan list as returned.\n" +
		"Parameters: INDEX (must be a positive integer)\nExample: " + MarkLoanWord + " 1"
	UnmarkLoanUsage = UnmarkLoanWord + ": Marks the loan at INDEX in the displayed loan list as not returned.\n" +
		"Parameters: INDEX (must be a positive integer)\nExample: " + UnmarkLoanWord + " 1"
	DeleteLoanUsage = DeleteLoanWord + ": Deletes the loan at INDEX in the displayed loan list.\n" +
		"Parameters: INDEX (must be a positive integer)\nExample: " + DeleteLoanWord + " 1"
	EditLoanUsage = EditLoanWord + ": Edits the loan at INDEX in the displayed loan list. At least one field must be changed.\n" +
		"Parameters: INDEX [v/VALUE] [s/START_DATE] [r/RETURN_DATE]\n" +
		"Example: " + EditLoanWord + " 5 v/500.00 s/2024-02-15 r/2024-04-21"
)

// LinkLoan records a new loan to a displayed person.
type LinkLoan struct {
	Person     Index
	Value      decimal.Decimal
	StartDate  core.Date
	ReturnDate core.Date
}

func (c LinkLoan) Execute(b *book.Book) (Result, error) {
	p, err := personAt(b, c.Person)
	if err != nil {
		return Result{}, err
	}
	loan, err := b.LinkLoan(c.Value, c.StartDate, c.ReturnDate, p)
	if err != nil {
		return Result{}, err
	}
	b.UpdateVisiblePersons(samePerson(p))
	b.UpdateVisibleLoans(book.AssignedTo(p))
	b.ShowDualPanel()
	return Result{Feedback: fmt.Sprintf("New loan added: %s\nAssigned to: %s", loan, p.Name), Changed: true}, nil
}

type MarkLoan struct {
	Loan Index
}

func (c MarkLoan) Execute(b *book.Book) (Result, error) {
	loan, err := loanAt(b, c.Loan)
	if err != nil {
		return Result{}, err
	}
	if err := b.MarkLoan(loan); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Loan marked.\nLoan: %s", loan), Changed: true}, nil
}

type UnmarkLoan struct {
	Loan Index
}

func (c UnmarkLoan) Execute(b *book.Book) (Result, error) {
	loan, err := loanAt(b, c.Loan)
	if err != nil {
		return Result{}, err
	}
	if err := b.UnmarkLoan(loan); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Loan unmarked.\nLoan: %s", loan), Changed: true}, nil
}

type DeleteLoan struct {
	Loan Index
}

func (c DeleteLoan) Execute(b *book.Book) (Result, error) {
	loan, err := loanAt(b, c.Loan)
	if err != nil {
		return Result{}, err
	}
	if err := b.DeleteLoan(loan); err != nil {
		return Result{}, err
	}
	return Result{Feedback: fmt.Sprintf("Loan deleted.\nLoan: %s", loan), Changed: true}, nil
}

// EditLoan replaces a displayed loan with a copy carrying the given fields.
// The replacement gets a new id and keeps the assignee and return status.
type EditLoan struct {
	Loan       Index
	Value      core.Optional[decimal.Decimal]
	StartDate  core.Optional[core.Date]
	ReturnDate core.Optional[core.Date]
}

func (c EditLoan) Execute(b *book.Book) (Result, error) {
	loan, err := loanAt(b, c.Loan)
	if err != nil {
		return Result{}, err
	}

	value := c.Value.OrElse(loan.Value())
	start := c.StartDate.OrElse(loan.StartDate())
	ret := c.ReturnDate.OrElse(loan.ReturnDate())
	if !core.IsValidValue(value) {
		return Result{}, core.ErrInvalidValue
	}
	if !core.IsValidDates(start, ret) {
		return Result{}, core.ErrInvalidDates
	}

	if err := b.DeleteLoan(loan); err != nil {
		return Result{}, err
	}
	edited, err := b.LinkLoan(value, start, ret, loan.Assignee())
	if err != nil {
		return Result{}, err
	}
	if loan.IsReturned() {
		if err := b.MarkLoan(edited); err != nil {
			return Result{}, err
		}
	}
	return Result{Feedback: fmt.Sprintf("Loan successfully edited: %s", edited), Changed: true}, nil
}
