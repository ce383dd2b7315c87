package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateRule is returned when a contract declares the same attribute twice.
	ErrDuplicateRule = errors.New("duplicate rule")
	// ErrInvalidType is returned for type descriptors that are neither a known kind nor a Go type.
	ErrInvalidType = errors.New("invalid type")
	// ErrInvalidFormat is returned when a format argument is not a pattern.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrEmptyArgument is returned for empty enumerations and empty ranges.
	ErrEmptyArgument = errors.New("empty argument")
	// ErrInvalidRange is returned when range bounds are not comparable.
	ErrInvalidRange = errors.New("invalid range")
	// ErrFrozenRule is the panic value cause when a built rule is mutated.
	ErrFrozenRule = errors.New("rule is frozen")
	// ErrContractNotFound is returned by File lookups for unknown names.
	ErrContractNotFound = errors.New("contract not found")
)

// DefinitionError reports a malformed rule declaration.
// It is raised while a contract is built, never during validation.
type DefinitionError struct {
	Attribute string
	Err       error
	Detail    string
}

func (e *DefinitionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("rule %q: %v", e.Attribute, e.Err)
	}
	return fmt.Sprintf("rule %q: %v: %s", e.Attribute, e.Err, e.Detail)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// ValidationError aggregates the messages produced by a contract.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return e.Messages[0]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Messages))
	for i, msg := range e.Messages {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return b.String()
}

// Messages returns the validation messages carried by err, or nil.
func Messages(err error) []string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return nil
}
