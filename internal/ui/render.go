// Package ui projects application state into a string. Nothing here mutates state.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolists/internal/app"
	"github.com/idilsaglam/todolists/internal/model"
)

const sidebarWidth = 28

// Focus is the pane receiving navigation keys.
type Focus int

const (
	FocusLists Focus = iota
	FocusItems
)

// View is everything Render needs. Input fields hold already rendered
// text inputs; an empty string means the input is not shown.
type View struct {
	State *app.State
	Theme Theme

	Focus      Focus
	ListCursor int
	ItemCursor int // position in the filtered items

	NewListInput string
	ListEdit     string
	ItemInput    string
	ItemEdit     string

	Help          string
	Width, Height int
}

// Render draws the whole screen.
func Render(v View) string {
	w := v.Width
	if w <= 0 {
		w = 80
	}
	innerW := max(w-4, sidebarWidth+10)

	sidebar := lipgloss.NewStyle().
		Width(sidebarWidth).
		Border(lipgloss.RoundedBorder(), false, true, false, false).
		BorderForeground(v.Theme.Border).
		PaddingRight(1).
		Render(strings.Join(sidebarLines(v), "\n"))
	main := lipgloss.NewStyle().
		Width(innerW - sidebarWidth - 3).
		PaddingLeft(1).
		Render(strings.Join(mainLines(v), "\n"))

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	if v.Height > 0 {
		body = lipgloss.NewStyle().Height(max(v.Height-8, 3)).Render(body)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		body,
		"",
		statusBar(v, innerW),
		v.Theme.Help.Render(v.Help),
	)
	return panel(v.Theme, content)
}

func sidebarLines(v View) []string {
	t, s := v.Theme, v.State
	lines := []string{t.Title.Render("Lists"), ""}

	switch {
	case v.NewListInput != "":
		lines = append(lines, v.NewListInput)
	case len(s.Lists) == 0:
		lines = append(lines, t.Accent.Render("Click me! (a)"))
	default:
		lines = append(lines, t.Muted.Render("+ new list (a)"))
	}
	lines = append(lines, "")

	for i, l := range s.Lists {
		prefix := "  "
		if v.Focus == FocusLists && i == v.ListCursor {
			prefix = t.Cursor.Render(t.SymCursor)
		}
		if l.Editing && v.ListEdit != "" {
			lines = append(lines, prefix+v.ListEdit)
			continue
		}
		name := l.Name
		if l.Dirty {
			name += t.SymDirty
		}
		if l.ID == s.Current {
			name = t.Selected.Render(name)
		}
		done, _ := l.Counts()
		count := t.Muted.Render(fmt.Sprintf(" %d/%d", done, len(l.Items)))
		lines = append(lines, prefix+name+count)
	}
	return lines
}

func mainLines(v View) []string {
	t, s := v.Theme, v.State
	l, ok := s.CurrentList()
	if !ok {
		return []string{"", t.Muted.Render("Begin by pressing a to add a list")}
	}

	done, pending := l.Counts()
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		t.Title.Render(l.Name),
		t.Success.Render("✔"), done,
		t.Pending.Render("•"), pending,
		t.Accent.Render("Total"), len(l.Items),
	)
	lines := []string{header, ProgressBar(t, done, len(l.Items), 24), ""}

	if v.ItemInput != "" {
		lines = append(lines, v.ItemInput)
	} else {
		lines = append(lines, t.Muted.Render("Input Todo (n)"))
	}
	lines = append(lines, "")

	items := s.Filter.Apply(l.Items)
	if len(items) == 0 {
		return append(lines, t.Muted.Render(s.Filter.EmptyText()))
	}
	for i, it := range items {
		lines = append(lines, itemLine(v, i, it))
	}
	return lines
}

func itemLine(v View, i int, it model.Item) string {
	t := v.Theme
	prefix := "  "
	if v.Focus == FocusItems && i == v.ItemCursor {
		prefix = t.Cursor.Render(t.SymCursor)
	}
	if it.Editing && v.ItemEdit != "" {
		return prefix + v.ItemEdit
	}

	box, text := t.Muted.Render(t.BoxUnchecked), it.Name
	if it.Completed {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(it.Name)
	}
	return fmt.Sprintf("%s%s %s", prefix, box, text)
}

func statusBar(v View, width int) string {
	t := v.Theme
	var status string
	if v.State.Status.Err != nil {
		status = t.Error.Render("✖ " + v.State.Status.Text())
	} else {
		status = t.Success.Render(v.State.Status.Text())
	}

	tabs := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		if f == v.State.Filter {
			tabs = append(tabs, t.ActiveTab.Render(f.String()))
		} else {
			tabs = append(tabs, t.Tab.Render(f.String()))
		}
	}
	right := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)

	gap := max(width-lipgloss.Width(status)-lipgloss.Width(right), 1)
	return status + strings.Repeat(" ", gap) + right
}

// ProgressBar renders a bar with percentage; the filled part uses the success color.
func ProgressBar(t Theme, done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := min(done*width/total, width)
	pct := done * 100 / total
	return t.Success.Render(strings.Repeat("█", filled)) +
		t.Muted.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3d%%", pct)
}

func panel(t Theme, inner string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(inner)
}
