package command

import (
	"fmt"

	"git.sr.ht/~jakintosh/loanbook/internal/book"
	"git.sr.ht/~jakintosh/loanbook/internal/core"
)

const (
	AddWord  = "add"
	ListWord = "list"

	AddUsage  = AddWord + ": Adds a person. Parameters: n/NAME [p/PHONE] [e/EMAIL]\nExample: " + AddWord + " n/John Doe p/98765432 e/johnd@example.com"
	ListUsage = ListWord + ": Lists all persons."
)

type Add struct {
	Name  string
	Phone string
	Email string
}

func (c Add) Execute(b *book.Book) (Result, error) {
	p, err := core.NewPerson(c.Name, c.Phone, c.Email)
	if err != nil {
		return Result{}, err
	}
	if err := b.AddPerson(p); err != nil {
		return Result{}, err
	}
	b.ShowPersonTab()
	return Result{Feedback: fmt.Sprintf("New person added: %s", p), Changed: true}, nil
}

type List struct{}

func (List) Execute(b *book.Book) (Result, error) {
	b.UpdateVisiblePersons(book.AllPersons)
	b.ShowPersonTab()
	return Result{Feedback: "Listed all persons"}, nil
}
