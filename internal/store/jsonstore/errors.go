package jsonstore

import (
	"errors"
	"fmt"
)

// Op names the gateway step that failed.
type Op string

const (
	OpPath Op = "path"
	OpSave Op = "save"
	OpLoad Op = "load"
)

// Failure kinds.
var (
	ErrPath    = errors.New("config directory unavailable")
	ErrCompose = errors.New("compose json")
	ErrWrite   = errors.New("write save file")
	ErrRead    = errors.New("read config file")
	ErrParse   = errors.New("parse config data")
)

// PersistError is returned by every gateway operation.
// errors.Is matches both Kind and the underlying cause.
type PersistError struct {
	Op   Op
	Kind error
	Err  error
}

func (e *PersistError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *PersistError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message is the short user-facing text without the cause.
func (e *PersistError) Message() string {
	switch e.Kind {
	case ErrPath:
		return "Could not get config directory"
	case ErrCompose:
		return "Failed to compose json data"
	case ErrWrite:
		return "Failed to write to save file"
	case ErrRead:
		return "Failed to read config file"
	case ErrParse:
		return "Failed to parse config data"
	}
	return e.Error()
}

func fail(op Op, kind, err error) error {
	return &PersistError{Op: op, Kind: kind, Err: err}
}
