package app

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/idilsaglam/todolists/internal/model"
)

// Apply runs one event through the reducer. It returns a SaveRequest when
// the state is dirty and no save is in flight; the caller runs it and feeds
// the outcome back as Saved.
func (s *State) Apply(ev Event) *SaveRequest {
	if s.apply(ev) {
		s.revision++
	}

	s.Dirty = model.AnyDirty(s.Lists) || s.Dirty
	if !s.Dirty || s.saving {
		return nil
	}
	if e, ok := ev.(Saved); ok && e.Err != nil {
		// retry on the next triggering event, not in a loop
		return nil
	}

	s.saving = true
	s.log.Debug("save scheduled", "revision", s.revision, "lists", len(s.Lists))
	return &SaveRequest{
		Lists:    model.CloneLists(s.Lists),
		Revision: s.revision,
	}
}

// apply mutates the state and reports whether persisted data may have changed.
func (s *State) apply(ev Event) bool {
	switch e := ev.(type) {
	case SelectList:
		if s.lookupList(e.List) < 0 {
			s.stale(ev)
			return false
		}
		s.Current = e.List
		return false

	case SetFilter:
		s.Filter = e.Filter
		return false

	case AddingList:
		s.AddingList = true
		return false

	case CancelAddingList:
		s.AddingList = false
		s.NewListInput = ""
		return false

	case NewListInput:
		s.NewListInput = e.Text
		return false

	case NewListSubmit:
		name := model.StripTrailingNewline(s.NewListInput)
		if name == "" {
			return false
		}
		s.Lists = append(s.Lists, model.NewList(name))
		s.NewListInput = ""
		s.AddingList = false
		s.Dirty = true
		return true

	case StartEditList:
		return s.withList(ev, e.List, func(l *model.List) bool {
			l.Editing = true
			return false
		})

	case RenameList:
		return s.withList(ev, e.List, func(l *model.List) bool {
			l.Name = e.Name
			return true
		})

	case DoneEditList:
		return s.withList(ev, e.List, func(l *model.List) bool {
			l.Editing = false
			l.Dirty = true
			return true
		})

	case DeleteList:
		i := s.lookupList(e.List)
		if i < 0 {
			s.stale(ev)
			return false
		}
		s.Lists = append(s.Lists[:i], s.Lists[i+1:]...)
		if s.Current == e.List {
			s.Current = uuid.Nil
		}
		s.Dirty = true
		return true

	case ListInput:
		return s.withList(ev, e.List, func(l *model.List) bool {
			l.Input = e.Text
			return false
		})

	case SubmitItem:
		return s.withList(ev, e.List, func(l *model.List) bool {
			if l.Input == "" {
				return false
			}
			l.Add(model.StripTrailingNewline(l.Input))
			l.Input = ""
			l.Dirty = true
			return true
		})

	case SetCompleted:
		return s.withItem(ev, e.ItemRef, func(it *model.Item) bool {
			it.Completed = e.Completed
			it.Dirty = true
			return true
		})

	case StartEditItem:
		return s.withItem(ev, e.ItemRef, func(it *model.Item) bool {
			it.Editing = true
			return false
		})

	case RenameItem:
		return s.withItem(ev, e.ItemRef, func(it *model.Item) bool {
			it.Name = e.Name
			return true
		})

	case DoneEditItem:
		return s.withItem(ev, e.ItemRef, func(it *model.Item) bool {
			it.Editing = false
			it.Dirty = true
			return true
		})

	case DeleteItem:
		return s.withList(ev, e.List, func(l *model.List) bool {
			if !l.Remove(e.Item) {
				s.stale(ev)
				return false
			}
			l.Dirty = true
			return true
		})

	case Saved:
		s.saved(e)
		return false
	}

	s.log.Warn("unhandled event", "event", fmt.Sprintf("%T", ev))
	return false
}

func (s *State) saved(e Saved) {
	s.saving = false
	if e.Err != nil {
		s.Status = Failed(e.Err)
		s.log.Error("save failed", "revision", e.Revision, "err", e.Err)
		return
	}

	s.Status = OK(fmt.Sprintf("Saved %d items", s.TotalItems()))
	if e.Revision != s.revision {
		// changed while writing; the fold schedules the next save
		s.log.Info("saved stale snapshot", "revision", e.Revision, "current", s.revision)
		return
	}
	for i := range s.Lists {
		s.Lists[i].ClearDirty()
	}
	s.Dirty = false
	s.log.Info("saved", "revision", e.Revision, "items", s.TotalItems())
}

func (s *State) withList(ev Event, id uuid.UUID, fn func(*model.List) bool) bool {
	l, ok := s.list(id)
	if !ok {
		s.stale(ev)
		return false
	}
	return fn(l)
}

func (s *State) withItem(ev Event, ref ItemRef, fn func(*model.Item) bool) bool {
	return s.withList(ev, ref.List, func(l *model.List) bool {
		it, ok := l.Item(ref.Item)
		if !ok {
			s.stale(ev)
			return false
		}
		return fn(it)
	})
}

// stale events address something that no longer exists; they are dropped.
func (s *State) stale(ev Event) {
	s.log.Warn("dropping event for unknown list or item", "event", fmt.Sprintf("%T", ev))
}
