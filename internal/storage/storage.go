// Package storage persists the address book between runs.
package storage

import (
	"context"
	"fmt"

	"git.sr.ht/~jakintosh/loanbook/internal/core"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store loads and saves the whole book at once.
type Store interface {
	Load(ctx context.Context) (Data, error)
	Save(ctx context.Context, data Data) error
	Close() error
}

type PersonRecord struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
	Email string    `json:"email,omitempty"`
}

type LoanRecord struct {
	ID       int       `json:"id"`
	Value    string    `json:"value"`
	Start    string    `json:"start"`
	Return   string    `json:"return"`
	Returned bool      `json:"returned"`
	Assignee uuid.UUID `json:"assignee"`
}

// Data is the persisted form of the book.
type Data struct {
	Persons []PersonRecord `json:"persons"`
	Loans   []LoanRecord   `json:"loans"`
}

// Encode converts persons and loans to their persisted form.
func Encode(persons []*core.Person, loans []*core.Loan) Data {
	data := Data{
		Persons: make([]PersonRecord, 0, len(persons)),
		Loans:   make([]LoanRecord, 0, len(loans)),
	}
	for _, p := range persons {
		data.Persons = append(data.Persons, PersonRecord{
			ID:    p.ID,
			Name:  p.Name,
			Phone: p.Phone,
			Email: p.Email,
		})
	}
	for _, l := range loans {
		data.Loans = append(data.Loans, LoanRecord{
			ID:       l.ID(),
			Value:    l.Value().StringFixed(2),
			Start:    l.StartDate().String(),
			Return:   l.ReturnDate().String(),
			Returned: l.IsReturned(),
			Assignee: l.Assignee().ID,
		})
	}
	return data
}

// Decode rebuilds persons and loans, linking every loan to its assignee.
func (d Data) Decode() ([]*core.Person, []*core.Loan, error) {
	persons := make([]*core.Person, 0, len(d.Persons))
	byID := make(map[uuid.UUID]*core.Person, len(d.Persons))
	for _, r := range d.Persons {
		if _, dup := byID[r.ID]; dup {
			return nil, nil, fmt.Errorf("%w %s", core.ErrDuplicatePersonID, r.ID)
		}
		if r.Name == "" {
			return nil, nil, fmt.Errorf("person %s: %w", r.ID, core.ErrEmptyName)
		}
		p := &core.Person{ID: r.ID, Name: r.Name, Phone: r.Phone, Email: r.Email}
		byID[r.ID] = p
		persons = append(persons, p)
	}

	loans := make([]*core.Loan, 0, len(d.Loans))
	for _, r := range d.Loans {
		loan, err := r.decode(byID)
		if err != nil {
			return nil, nil, fmt.Errorf("loan %d: %w", r.ID, err)
		}
		loans = append(loans, loan)
	}
	return persons, loans, nil
}

func (r LoanRecord) decode(persons map[uuid.UUID]*core.Person) (*core.Loan, error) {
	assignee, ok := persons[r.Assignee]
	if !ok {
		return nil, fmt.Errorf("%w: unknown assignee %s", core.ErrValidation, r.Assignee)
	}
	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: value %q", core.ErrValidation, r.Value)
	}
	start, err := core.ParseDate(r.Start)
	if err != nil {
		return nil, err
	}
	ret, err := core.ParseDate(r.Return)
	if err != nil {
		return nil, err
	}
	return core.RestoreLoan(r.ID, value, start, ret, r.Returned, assignee)
}

// Open returns the store for the named backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON:
		return NewJSONStore(path), nil
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)
