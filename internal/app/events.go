package app

import (
	"github.com/google/uuid"

	"github.com/idilsaglam/todolists/internal/model"
)

// Event is anything the reducer understands. The set is closed.
type Event interface{ event() }

// ListRef addresses one list.
type ListRef struct {
	List uuid.UUID
}

// ItemRef addresses one item inside a list.
type ItemRef struct {
	List uuid.UUID
	Item uuid.UUID
}

type (
	SelectList struct{ ListRef }
	SetFilter  struct{ Filter model.Filter }

	// lists bar
	AddingList       struct{}
	CancelAddingList struct{}
	NewListInput     struct{ Text string }
	NewListSubmit    struct{}
	StartEditList    struct{ ListRef }
	RenameList       struct {
		ListRef
		Name string
	}
	DoneEditList struct{ ListRef }
	DeleteList   struct{ ListRef }

	// list scoped
	ListInput struct {
		ListRef
		Text string
	}
	SubmitItem struct{ ListRef }

	// item scoped
	SetCompleted struct {
		ItemRef
		Completed bool
	}
	StartEditItem struct{ ItemRef }
	RenameItem    struct {
		ItemRef
		Name string
	}
	DoneEditItem struct{ ItemRef }
	DeleteItem   struct{ ItemRef }

	// Saved carries the outcome of a SaveRequest back into the reducer.
	Saved struct {
		Revision uint64
		Err      error
	}
)

func (SelectList) event()       {}
func (SetFilter) event()        {}
func (AddingList) event()       {}
func (CancelAddingList) event() {}
func (NewListInput) event()     {}
func (NewListSubmit) event()    {}
func (StartEditList) event()    {}
func (RenameList) event()       {}
func (DoneEditList) event()     {}
func (DeleteList) event()       {}
func (ListInput) event()        {}
func (SubmitItem) event()       {}
func (SetCompleted) event()     {}
func (StartEditItem) event()    {}
func (RenameItem) event()       {}
func (DoneEditItem) event()     {}
func (DeleteItem) event()       {}
func (Saved) event()            {}
