package domain

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInfrastructure ErrorKind = iota
	KindValidation
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "infrastructure"
	}
}

// ResetError carries the kind of a password reset failure so the transport
// layer can map it without inspecting messages.
type ResetError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ResetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ResetError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *ResetError {
	return &ResetError{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) *ResetError {
	return &ResetError{Kind: KindNotFound, Message: message}
}

func NewInfrastructureError(op string, err error) *ResetError {
	return &ResetError{Kind: KindInfrastructure, Message: op, Err: err}
}

// KindOf reports the kind of err. Errors that are not a *ResetError are
// treated as infrastructure failures.
func KindOf(err error) ErrorKind {
	var re *ResetError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindInfrastructure
}
