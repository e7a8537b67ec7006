package core

import (
	"strings"

	"github.com/google/uuid"
)

// Person is a contact that loans can be assigned to. Loans refer to a Person but never own it.
type Person struct {
	ID    uuid.UUID
	Name  string
	Phone string
	Email string
}

// NewPerson creates a person with a fresh identifier.
func NewPerson(name, phone, email string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Person{
		ID:    uuid.New(),
		Name:  name,
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}, nil
}

// SameAs reports whether p and other are the same contact.
func (p *Person) SameAs(other *Person) bool {
	if p == nil || other == nil {
		return false
	}
	return p.ID == other.ID
}

// String renders the person for command feedback.
func (p *Person) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Phone != "" {
		b.WriteString("; Phone: " + p.Phone)
	}
	if p.Email != "" {
		b.WriteString("; Email: " + p.Email)
	}
	return b.String()
}
