// Package app holds the application state and the reducer that mutates it.
package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/todolists/internal/model"
)

// Status is the outcome of the last persistence operation.
type Status struct {
	Message string
	Err     error
}

// OK builds a success status.
func OK(msg string) Status { return Status{Message: msg} }

// Failed builds an error status.
func Failed(err error) Status { return Status{Err: err} }

// State is the whole application state. It is owned by one goroutine.
type State struct {
	Lists   []model.List
	Current uuid.UUID // uuid.Nil when no list is selected
	Filter  model.Filter
	Status  Status

	NewListInput string
	AddingList   bool

	// Dirty is true while changes are not yet persisted.
	Dirty bool

	revision uint64
	saving   bool
	log      *log.Logger
}

// SaveRequest is the side effect returned by Apply. Lists is a snapshot
// taken when the save was scheduled.
type SaveRequest struct {
	Lists    []model.List
	Revision uint64
}

// New builds the initial state from loaded lists and the load outcome.
func New(lists []model.List, status Status, logger *log.Logger) *State {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if lists == nil {
		lists = []model.List{}
	}
	return &State{
		Lists:  lists,
		Status: status,
		log:    logger,
	}
}

// Saving reports whether a save is in flight.
func (s *State) Saving() bool { return s.saving }

// Revision counts the mutations applied so far.
func (s *State) Revision() uint64 { return s.revision }

func (s *State) lookupList(id uuid.UUID) int {
	for i := range s.Lists {
		if s.Lists[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) list(id uuid.UUID) (*model.List, bool) {
	i := s.lookupList(id)
	if i < 0 {
		return nil, false
	}
	return &s.Lists[i], true
}

// CurrentList returns the selected list, if any.
func (s *State) CurrentList() (*model.List, bool) {
	if s.Current == uuid.Nil {
		return nil, false
	}
	return s.list(s.Current)
}

// TotalItems counts items across all lists.
func (s *State) TotalItems() int { return model.TotalItems(s.Lists) }

// Title marks unsaved changes with an asterisk, for the app and the selected list.
func (s *State) Title() string {
	star := func(dirty bool) string {
		if dirty {
			return "*"
		}
		return ""
	}
	if l, ok := s.CurrentList(); ok {
		return fmt.Sprintf("Todo%s - %s%s", star(s.Dirty), l.Name, star(l.Dirty))
	}
	return "Todo" + star(s.Dirty)
}

// Text renders the status for display.
func (s Status) Text() string {
	if s.Err == nil {
		return s.Message
	}
	var m interface{ Message() string }
	if errors.As(s.Err, &m) {
		return m.Message()
	}
	return s.Err.Error()
}
