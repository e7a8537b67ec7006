// Package command executes user commands against a book.
package command

import (
	"fmt"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/core"
)

// Result is what a command reports back to the user.
type Result struct {
	Feedback string
	Exit     bool
	// Changed is set when the book's persons or loans were modified.
	Changed bool
}

// Command is a parsed user instruction. A command that returns an error has not
// changed the book.
type Command interface {
	Execute(b *book.Book) (Result, error)
}

// Index is a one-based position in a displayed list.
type Index int

func (i Index) zeroBased() int { return int(i) - 1 }

func personAt(b *book.Book, i Index) (*core.Person, error) {
	persons := b.VisiblePersons()
	if i < 1 || i.zeroBased() >= len(persons) {
		return nil, fmt.Errorf("%w: the person index provided is invalid", core.ErrNotFound)
	}
	return persons[i.zeroBased()], nil
}

func loanAt(b *book.Book, i Index) (*core.Loan, error) {
	loans := b.VisibleLoans()
	if i < 1 || i.zeroBased() >= len(loans) {
		return nil, fmt.Errorf("%w: no loan has been found for loan number: %d", core.ErrNotFound, int(i))
	}
	return loans[i.zeroBased()], nil
}

func samePerson(p *core.Person) book.PersonPredicate {
	return func(other *core.Person) bool { return other.SameAs(p) }
}
