package core

import (
	"errors"
	"fmt"
)

// Error classes. Every error produced by the ledger, analytics and commands wraps exactly
// one of these so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate")
)

var (
	ErrInvalidValue    = fmt.Errorf("%w: loan values must be a positive number", ErrValidation)
	ErrInvalidDates    = fmt.Errorf("%w: the loan start date must be before the return date", ErrValidation)
	ErrMissingAssignee = fmt.Errorf("%w: a loan must be assigned to a person", ErrValidation)
	ErrNilSource       = fmt.Errorf("%w: loan sequence is nil", ErrValidation)
	ErrEmptyName       = fmt.Errorf("%w: names must not be blank", ErrValidation)

	ErrLoanNotFound   = fmt.Errorf("%w: loan", ErrNotFound)
	ErrPersonNotFound = fmt.Errorf("%w: person", ErrNotFound)

	ErrDuplicateLoanID   = fmt.Errorf("%w: loan id", ErrDuplicate)
	ErrDuplicatePersonID = fmt.Errorf("%w: person id", ErrDuplicate)
)
