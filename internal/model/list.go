package model

import "github.com/google/uuid"

// List is a named, ordered collection of items.
type List struct {
	Items []Item `json:"todo_items"`
	Name  string `json:"name"`

	ID      uuid.UUID `json:"-"`
	Input   string    `json:"-"`
	Dirty   bool      `json:"-"`
	Editing bool      `json:"-"`
}

// NewList returns an empty list with a fresh ID.
func NewList(name string) List {
	return List{Name: name, Items: []Item{}, ID: uuid.New()}
}

// Add appends a new item and returns its ID.
func (l *List) Add(name string) uuid.UUID {
	it := NewItem(name)
	l.Items = append(l.Items, it)
	return it.ID
}

// Lookup returns the position of the item with the given ID, or -1.
func (l *List) Lookup(id uuid.UUID) int {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Item returns a pointer into the list for in-place mutation.
func (l *List) Item(id uuid.UUID) (*Item, bool) {
	i := l.Lookup(id)
	if i < 0 {
		return nil, false
	}
	return &l.Items[i], true
}

// ItemAt resolves a display position to the item currently there.
func (l *List) ItemAt(i int) (Item, bool) {
	if i < 0 || i >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[i], true
}

// Remove deletes the item with the given ID, keeping the order of the rest.
func (l *List) Remove(id uuid.UUID) bool {
	i := l.Lookup(id)
	if i < 0 {
		return false
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	return true
}

// Counts returns the number of completed and pending items.
func (l *List) Counts() (done, pending int) {
	for _, it := range l.Items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// RefreshDirty folds item flags into the list flag and reports the result.
func (l *List) RefreshDirty() bool {
	for _, it := range l.Items {
		l.Dirty = l.Dirty || it.Dirty
	}
	return l.Dirty
}

// ClearDirty resets the list flag and every item flag.
func (l *List) ClearDirty() {
	l.Dirty = false
	for i := range l.Items {
		l.Items[i].Dirty = false
	}
}

// Clone returns a deep copy sharing no backing arrays with l.
func (l List) Clone() List {
	c := l
	c.Items = make([]Item, len(l.Items))
	copy(c.Items, l.Items)
	return c
}

// AssignIDs gives every list and item without one a fresh ID.
// Loaded data carries none since IDs are never persisted.
func AssignIDs(lists []List) {
	for i := range lists {
		if lists[i].ID == uuid.Nil {
			lists[i].ID = uuid.New()
		}
		if lists[i].Items == nil {
			lists[i].Items = []Item{}
		}
		for j := range lists[i].Items {
			if lists[i].Items[j].ID == uuid.Nil {
				lists[i].Items[j].ID = uuid.New()
			}
		}
	}
}

// AnyDirty refreshes each list and reports whether any of them is dirty.
func AnyDirty(lists []List) bool {
	dirty := false
	for i := range lists {
		if lists[i].RefreshDirty() {
			dirty = true
		}
	}
	return dirty
}

// CloneLists deep-copies a list collection.
func CloneLists(lists []List) []List {
	out := make([]List, len(lists))
	for i := range lists {
		out[i] = lists[i].Clone()
	}
	return out
}

// TotalItems counts items across all lists.
func TotalItems(lists []List) int {
	n := 0
	for _, l := range lists {
		n += len(l.Items)
	}
	return n
}
