package model

// Filter selects which items are presented. The zero value shows everything.
type Filter int

const (
	All Filter = iota
	Uncomplete
	Completed
)

// Filters lists every filter in tab order.
var Filters = []Filter{All, Uncomplete, Completed}

func (f Filter) String() string {
	switch f {
	case Uncomplete:
		return "Uncomplete"
	case Completed:
		return "Completed"
	default:
		return "All"
	}
}

// Matches reports whether it passes the filter.
func (f Filter) Matches(it Item) bool {
	switch f {
	case Uncomplete:
		return !it.Completed
	case Completed:
		return it.Completed
	default:
		return true
	}
}

// Apply returns the matching items in their original order.
// The input slice is left untouched.
func (f Filter) Apply(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

// Next cycles All -> Uncomplete -> Completed -> All.
func (f Filter) Next() Filter {
	return Filters[(int(f)+1)%len(Filters)]
}

// EmptyText is shown in place of an empty filtered view.
func (f Filter) EmptyText() string {
	switch f {
	case Uncomplete:
		return "Nothing Todo!"
	case Completed:
		return "Nothing Completed..."
	default:
		return "Add a new item todo"
	}
}
