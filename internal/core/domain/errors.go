package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")
)

// Credential errors. All of them match ErrCredential with errors.Is.
var (
	ErrCredential         = errors.New("credential rejected")
	ErrInvalidCredentials = &credentialError{msg: "invalid email or pin"}
	ErrOldPINIncorrect    = &credentialError{msg: "old pin is incorrect"}
)

// ErrDuplicateAccount is returned when signing up with a registered email
var ErrDuplicateAccount = errors.New("account already registered")

type credentialError struct {
	msg string
}

func (e *credentialError) Error() string { return e.msg }

func (e *credentialError) Is(target error) bool { return target == ErrCredential }

// ValidationError reports an input that fails shape or range rules.
// It is always raised before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StoreError wraps a failed read or write against the record store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err, returning nil for a nil err
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// InconsistentStateError flags an account whose identity secret and
// profile pin no longer agree.
type InconsistentStateError struct {
	AccountID uint
	Email     string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("account %d (%s): identity secret and profile pin diverge", e.AccountID, e.Email)
}

// IsValidation reports whether err carries a ValidationError
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
