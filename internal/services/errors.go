package services

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is returned when no user has the requested userId.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUserID is returned by stores that enforce userId uniqueness.
var ErrDuplicateUserID = errors.New("userId already exists")

// PersistenceError wraps any unexpected storage (or hashing) failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ValidationError represents a request payload the service refuses.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// persistence passes ErrUserNotFound through and wraps everything else.
func persistence(op string, err error) error {
	if err == nil || errors.Is(err, ErrUserNotFound) {
		return err
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
