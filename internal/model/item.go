package model

import (
	"strings"

	"github.com/google/uuid"
)

// Item is the domain model for a todo entry.
// Only Completed and Name are persisted; the rest lives for one session.
type Item struct {
	Completed bool   `json:"completed"`
	Name      string `json:"name"`

	ID      uuid.UUID `json:"-"`
	Editing bool      `json:"-"`
	Dirty   bool      `json:"-"`
}

// NewItem returns an uncompleted item with a fresh ID.
func NewItem(name string) Item {
	return Item{Name: name, ID: uuid.New()}
}

// StripTrailingNewline removes at most one line terminator, "\r\n" first.
func StripTrailingNewline(s string) string {
	if t, ok := strings.CutSuffix(s, "\r\n"); ok {
		return t
	}
	return strings.TrimSuffix(s, "\n")
}
